package rng

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Health is the last known state of the hardware entropy source. Experiments
// refuse to draw from it while it is unhealthy.
type Health struct {
	mu            sync.RWMutex
	ok            bool
	lastErr       string
	lastCheckedAt time.Time
	lastSample32  uint32
	repeatCount32 int
}

func NewHealth() *Health { return &Health{ok: false} }

func (h *Health) Set(ok bool, errMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ok = ok
	h.lastErr = errMsg
	h.lastCheckedAt = time.Now()
}

func (h *Health) Snapshot() (ok bool, errMsg string, t time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ok, h.lastErr, h.lastCheckedAt
}

// ErrUnhealthy is returned when experiments ask for an entropy source that
// failed its last check.
var ErrUnhealthy = errors.New("entropy source unhealthy")

// Err reports ErrUnhealthy with the last failure reason, or nil.
func (h *Health) Err() error {
	ok, msg, _ := h.Snapshot()
	if ok {
		return nil
	}
	if msg == "" {
		msg = "not checked yet"
	}
	return fmt.Errorf("%w: %s", ErrUnhealthy, msg)
}

// CheckSample reads a block from r and rejects obviously broken output.
// It cannot prove randomness, but detects disconnection/stuck output/common failures.
func CheckSample(r io.Reader, h *Health) error {
	const sampleBytes = 256
	buf := make([]byte, sampleBytes)

	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("entropy read failed: %w", err)
	}

	if allIdentical(buf) {
		return errors.New("entropy source appears stuck (all sampled bytes identical)")
	}

	last, words, repeats := wordRepeats(buf)
	if words > 1 && repeats > (words-1)*3/4 {
		return errors.New("entropy source appears stuck (32-bit words repeating excessively)")
	}
	if h != nil {
		h.mu.Lock()
		h.lastSample32 = last
		h.repeatCount32 = 0
		h.mu.Unlock()
	}

	if d := distinctBytes(buf); d < 8 {
		return fmt.Errorf("entropy sample has too few distinct byte values (%d); suspicious", d)
	}
	return nil
}

func allIdentical(buf []byte) bool {
	for i := 1; i < len(buf); i++ {
		if buf[i] != buf[0] {
			return false
		}
	}
	return true
}

// wordRepeats counts consecutive equal big-endian words in buf.
func wordRepeats(buf []byte) (last uint32, words, repeats int) {
	for i := 0; i+4 <= len(buf); i += 4 {
		w := binary.BigEndian.Uint32(buf[i : i+4])
		if words > 0 && w == last {
			repeats++
		}
		last = w
		words++
	}
	return last, words, repeats
}

func distinctBytes(buf []byte) int {
	var seen [256]bool
	n := 0
	for _, b := range buf {
		if !seen[b] {
			seen[b] = true
			n++
		}
	}
	return n
}

// stuckRepeats identical 32-bit values in a row is astronomically unlikely
// for a healthy source.
const stuckRepeats = 20

// Observe records one 32-bit sample and reports an error once the same value
// has repeated stuckRepeats times in a row.
func (h *Health) Observe(w uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w == h.lastSample32 {
		h.repeatCount32++
	} else {
		h.repeatCount32 = 0
	}
	h.lastSample32 = w
	if h.repeatCount32 >= stuckRepeats {
		return errors.New("entropy source appears stuck (repeating identical 32-bit outputs)")
	}
	return nil
}

// PeriodicHealthCheck samples the reader every interval until ctx is done.
func PeriodicHealthCheck(ctx context.Context, r io.Reader, h *Health, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var buf [4]byte
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if _, err := io.ReadFull(r, buf[:]); err != nil {
			h.Set(false, "entropy read failed: "+err.Error())
			continue
		}
		if err := h.Observe(binary.BigEndian.Uint32(buf[:])); err != nil {
			h.Set(false, err.Error())
			continue
		}
		h.Set(true, "")
	}
}
