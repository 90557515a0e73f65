package rng_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lost-woods/shuffle/src/rng"
)

func TestCheckSample(t *testing.T) {
	varied := make([]byte, 256)
	for i := range varied {
		varied[i] = byte(i)
	}
	sevenValues := make([]byte, 256)
	for i := range sevenValues {
		sevenValues[i] = byte(i % 7 * 30)
	}
	repeatedWord := bytes.Repeat([]byte{1, 2, 3, 4}, 64)

	tests := []struct {
		name    string
		sample  []byte
		wantErr bool
	}{
		{"varied", varied, false},
		{"all identical", make([]byte, 256), true},
		{"repeating words", repeatedWord, true},
		{"too few distinct bytes", sevenValues, true},
		{"short read", varied[:100], true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := rng.CheckSample(bytes.NewReader(tc.sample), rng.NewHealth())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHealth_Err(t *testing.T) {
	h := rng.NewHealth()
	require.ErrorIs(t, h.Err(), rng.ErrUnhealthy, "a fresh monitor has not passed a check yet")

	h.Set(true, "")
	require.NoError(t, h.Err())

	h.Set(false, "unplugged")
	err := h.Err()
	require.ErrorIs(t, err, rng.ErrUnhealthy)
	assert.Contains(t, err.Error(), "unplugged")
}

func TestPeriodicHealthCheck_RecoversAndStops(t *testing.T) {
	h := rng.NewHealth()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rng.PeriodicHealthCheck(ctx, &uint32CounterReader{next: 1}, h, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return h.Err() == nil }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("health check did not stop on cancel")
	}
}

func TestHealth_ObserveFlagsStuckWords(t *testing.T) {
	h := rng.NewHealth()

	require.NoError(t, h.Observe(7))
	for i := 1; i < 20; i++ {
		require.NoError(t, h.Observe(7), "repeat %d", i)
	}
	assert.ErrorContains(t, h.Observe(7), "appears stuck")

	// A fresh value resets the streak.
	assert.NoError(t, h.Observe(8))
	assert.NoError(t, h.Observe(8))
}

// constantReader is a disconnected device that keeps returning the same byte.
type constantReader byte

func (c constantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}
	return len(p), nil
}

func TestPeriodicHealthCheck_DetectsStuckSource(t *testing.T) {
	h := rng.NewHealth()
	h.Set(true, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go rng.PeriodicHealthCheck(ctx, constantReader(0xAB), h, time.Millisecond)

	require.Eventually(t, func() bool {
		err := h.Err()
		return err != nil && strings.Contains(err.Error(), "appears stuck")
	}, 2*time.Second, time.Millisecond)
}
