package rng

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const bound = 1_000_000_000

var ErrRange = errors.New("invalid range")

// UniformInt32 returns a uniform integer in [min, max] inclusive.
// Integer-only rejection sampling (no floats). This is unbiased assuming the uint32 stream is uniform.
func UniformInt32(r io.Reader, h *Health, min int, max int) (int32, error) {
	if min < -bound || min > bound || max < -bound || max > bound {
		return 0, fmt.Errorf("%w: bounds must lie within ±1,000,000,000 (got [%d, %d])", ErrRange, min, max)
	}
	if min > max {
		return 0, fmt.Errorf("%w: min %d exceeds max %d", ErrRange, min, max)
	}

	rangeSize := uint32(max - min + 1)

	// limit = floor(2^32 / rangeSize) * rangeSize
	limit := (uint64(1) << 32) / uint64(rangeSize) * uint64(rangeSize)

	var buf [4]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if h != nil {
				h.Set(false, "error fetching random bytes: "+err.Error())
			}
			return 0, fmt.Errorf("error fetching random bytes: %w", err)
		}

		x := binary.BigEndian.Uint32(buf[:])
		if uint64(x) < limit {
			return int32(x%rangeSize) + int32(min), nil
		}
		// reject and retry
	}
}
