package rng_test

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lost-woods/shuffle/src/rng"
)

// uint32CounterReader emits an infinite stream of big-endian uint32 values: 0,1,2,3,...
type uint32CounterReader struct {
	next uint32
	buf  [4]byte
	off  int
}

func (r *uint32CounterReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.off == 0 {
			binary.BigEndian.PutUint32(r.buf[:], r.next)
			r.next++
		}
		copied := copy(p[n:], r.buf[r.off:])
		n += copied
		r.off = (r.off + copied) % 4
	}
	return n, nil
}

// scriptedReader replays fixed words, then reports EOF.
type scriptedReader struct {
	words []uint32
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	if len(r.words) == 0 {
		return 0, io.EOF
	}
	if len(p) < 4 {
		return 0, io.ErrShortBuffer
	}
	binary.BigEndian.PutUint32(p, r.words[0])
	r.words = r.words[1:]
	return 4, nil
}

func TestUniformInt32_PerfectUniformWhenRangeDivides2Pow32(t *testing.T) {
	// Range size 256 divides 2^32, so no rejection is needed and distribution is perfect over 65536 draws.
	r := &uint32CounterReader{}
	counts := make([]int, 256)

	for i := 0; i < 65536; i++ {
		v, err := rng.UniformInt32(r, nil, 0, 255)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		counts[int(v)]++
	}

	for i, c := range counts {
		if c != 256 {
			t.Fatalf("value %d count=%d want=256", i, c)
		}
	}
}

func TestUniformInt32_RetriesOnRejectedValues(t *testing.T) {
	// For range size 10: limit = 4294967290, so 0xFFFFFFFA..0xFFFFFFFF are rejected.
	r := &scriptedReader{words: []uint32{0xFFFFFFFA, 7}}

	v, err := rng.UniformInt32(r, nil, 0, 9)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestUniformInt32_StaysInRange(t *testing.T) {
	r := &uint32CounterReader{}
	cases := []struct{ min, max int }{
		{0, 0},
		{-5, -5},
		{-10, 10},
		{1, 4},
		{40, 60},
		{-1000000000, -999999900},
	}

	for _, tc := range cases {
		for i := 0; i < 1000; i++ {
			v, err := rng.UniformInt32(r, nil, tc.min, tc.max)
			require.NoError(t, err)
			if v < int32(tc.min) || v > int32(tc.max) {
				t.Fatalf("min=%d max=%d got out-of-range %d", tc.min, tc.max, v)
			}
		}
	}
}

func TestUniformInt32_RejectsBadRanges(t *testing.T) {
	r := &uint32CounterReader{}
	for _, tc := range []struct{ min, max int }{
		{5, 4},
		{-1000000001, 0},
		{0, 1000000001},
	} {
		_, err := rng.UniformInt32(r, nil, tc.min, tc.max)
		assert.ErrorIs(t, err, rng.ErrRange, "min=%d max=%d", tc.min, tc.max)
	}
}

func TestUniformInt32_ReadFailureMarksUnhealthy(t *testing.T) {
	h := rng.NewHealth()
	h.Set(true, "")

	_, err := rng.UniformInt32(&scriptedReader{}, h, 1, 6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.ErrorIs(t, h.Err(), rng.ErrUnhealthy)
}
