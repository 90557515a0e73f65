package metrics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lost-woods/shuffle/src/deck"
)

// Pair is an unordered pair of card identities, stored lower id first.
type Pair struct {
	Lo, Hi int
}

func (p Pair) compare(o Pair) int {
	if c := cmp.Compare(p.Lo, o.Lo); c != 0 {
		return c
	}
	return cmp.Compare(p.Hi, o.Hi)
}

// Distances maps every pair of cards to position(Hi) - position(Lo).
// The same two physical cards always share a key, whatever the arrangement.
type Distances map[Pair]int

func PairDistances(cards []deck.Card) Distances {
	n := len(cards)
	d := make(Distances, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := cards[i].ID(), cards[j].ID()
			if a < b {
				d[Pair{a, b}] = j - i
			} else {
				d[Pair{b, a}] = i - j
			}
		}
	}
	return d
}

// Baseline holds the pristine arrangement's distances in a fixed key order so
// shuffled arrangements can be aligned against it. It is read-only after
// construction and safe for concurrent use.
type Baseline struct {
	keys []Pair
	x    []float64
}

func NewBaseline(cards []deck.Card) *Baseline {
	d := PairDistances(cards)
	keys := make([]Pair, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Pair.compare)

	x := make([]float64, len(keys))
	for i, k := range keys {
		x[i] = float64(d[k])
	}
	return &Baseline{keys: keys, x: x}
}

// Pairs is the number of card pairs in the baseline.
func (b *Baseline) Pairs() int { return len(b.keys) }

// Align returns the distances of d in baseline key order. It fails with
// ErrPermutationViolation unless d has exactly the baseline's key set.
func (b *Baseline) Align(d Distances) ([]float64, error) {
	if len(d) != len(b.keys) {
		return nil, fmt.Errorf("%w: %d pairs, baseline has %d", ErrPermutationViolation, len(d), len(b.keys))
	}
	y := make([]float64, len(b.keys))
	for i, k := range b.keys {
		v, ok := d[k]
		if !ok {
			return nil, fmt.Errorf("%w: pair (%d, %d) missing", ErrPermutationViolation, k.Lo, k.Hi)
		}
		y[i] = float64(v)
	}
	return y, nil
}

// Correlate scores an arrangement of the baseline's cards. Unchanged order
// gives R = 1, a reversed deck R = -1, a well shuffled one R near 0.
func (b *Baseline) Correlate(cards []deck.Card) (Correlation, error) {
	y, err := b.Align(PairDistances(cards))
	if err != nil {
		return Correlation{}, err
	}
	return Pearson(b.x, y)
}
