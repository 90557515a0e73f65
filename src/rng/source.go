package rng

import (
	"io"
	"math/rand/v2"
	"sync"
)

// Source is the randomness a shuffle may draw from.
type Source interface {
	// IntRange returns a uniform integer in [lo, hi] inclusive.
	IntRange(lo, hi int) int
	// Shuffle permutes n elements uniformly using swap.
	Shuffle(n int, swap func(i, j int))
}

// Seeder hands out independent streams. Streams with different ids must not
// share generator state.
type Seeder interface {
	Stream(id uint64) Source
}

// PCGSource is a seeded pseudo-random source. Not safe for concurrent use.
type PCGSource struct {
	r *rand.Rand
}

func NewPCG(seed, stream uint64) *PCGSource {
	return &PCGSource{r: rand.New(rand.NewPCG(mix(seed), mix(stream^0x9e3779b97f4a7c15)))}
}

func (s *PCGSource) IntRange(lo, hi int) int {
	return lo + s.r.IntN(hi-lo+1)
}

func (s *PCGSource) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// PCGSeeder derives one PCG stream per id from a master seed, so a trial's
// draws depend only on (Seed, id) and not on which worker ran it.
type PCGSeeder struct {
	Seed uint64
}

func (s PCGSeeder) Stream(id uint64) Source { return NewPCG(s.Seed, id) }

// mix is the splitmix64 finalizer; it spreads adjacent ids across the state space.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// ReaderSource draws from a byte stream such as the hardware serial RNG.
//
// Read failures are sticky: after the first one every draw returns lo and
// Err reports the failure. Callers check Err once the shuffle is done.
type ReaderSource struct {
	r      io.Reader
	health *Health

	mu  sync.Mutex
	err error
}

func NewReaderSource(r io.Reader, h *Health) *ReaderSource {
	return &ReaderSource{r: r, health: h}
}

func (s *ReaderSource) IntRange(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return lo
	}
	v, err := UniformInt32(s.r, s.health, lo, hi)
	if err != nil {
		s.err = err
		return lo
	}
	return int(v)
}

// Shuffle is a Fisher-Yates pass over IntRange draws.
func (s *ReaderSource) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i >= 1; i-- {
		swap(i, s.IntRange(0, i))
	}
}

func (s *ReaderSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ReaderSeeder shares one entropy reader between all streams. The reader is
// wrapped in a LockedReader so concurrent workers never tear a 4-byte draw.
type ReaderSeeder struct {
	r      io.Reader
	health *Health
}

func NewReaderSeeder(r io.Reader, h *Health) *ReaderSeeder {
	return &ReaderSeeder{r: NewLockedReader(r), health: h}
}

func (s *ReaderSeeder) Stream(uint64) Source { return NewReaderSource(s.r, s.health) }
