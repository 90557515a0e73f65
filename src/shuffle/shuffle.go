// Package shuffle implements physical shuffling procedures as permutations of
// a card sequence.
//
// Every Shuffler treats its input as read-only and returns a new slice holding
// exactly the same card instances. Randomized parameters are drawn from the
// rng.Source on every call; shufflers keep no state between calls.
package shuffle

import (
	"errors"
	"fmt"

	"github.com/lost-woods/shuffle/src/deck"
	"github.com/lost-woods/shuffle/src/rng"
)

// ErrParameterOutOfRange means a Source returned a draw outside the bounds it
// was asked for. It is raised as a panic: the Source is broken, not the input.
var ErrParameterOutOfRange = errors.New("random parameter out of range")

type Shuffler interface {
	Name() string
	Shuffle(src rng.Source, cards []deck.Card) []deck.Card
}

const (
	RiffleSplitMin = 40 // percent
	RiffleSplitMax = 60
	ClumpMin       = 1
	ClumpMax       = 4
	CutMin         = 10 // percent
	CutMax         = 40
)

func draw(src rng.Source, lo, hi int) int {
	v := src.IntRange(lo, hi)
	if v < lo || v > hi {
		panic(fmt.Errorf("%w: drew %d outside [%d, %d]", ErrParameterOutOfRange, v, lo, hi))
	}
	return v
}

// splitAt converts a percentage into a card count, rounding toward zero.
func splitAt(n, percent int) int { return n * percent / 100 }

func clone(cards []deck.Card) []deck.Card {
	return append(make([]deck.Card, 0, len(cards)), cards...)
}

// Uniform returns every ordering with equal probability.
type Uniform struct{}

func (Uniform) Name() string { return "uniform" }

func (Uniform) Shuffle(src rng.Source, cards []deck.Card) []deck.Card {
	out := clone(cards)
	src.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// PerfectRiffle splits at the exact midpoint and alternates single cards,
// first half leading. When the halves differ the tail of the longer half
// follows the interleave.
type PerfectRiffle struct{}

func (PerfectRiffle) Name() string { return "riffle" }

func (PerfectRiffle) Shuffle(_ rng.Source, cards []deck.Card) []deck.Card {
	m := len(cards) / 2
	first, second := cards[:m], cards[m:]

	out := make([]deck.Card, 0, len(cards))
	for i := range first {
		out = append(out, first[i], second[i])
	}
	return append(out, second[len(first):]...)
}

// ImperfectRiffle splits somewhere between 40% and 60% and drops clumps of
// one to four cards from each half in turn.
type ImperfectRiffle struct{}

func (ImperfectRiffle) Name() string { return "imperfect" }

func (ImperfectRiffle) Shuffle(src rng.Source, cards []deck.Card) []deck.Card {
	split := splitAt(len(cards), draw(src, RiffleSplitMin, RiffleSplitMax))
	first, second := cards[:split], cards[split:]

	out := make([]deck.Card, 0, len(cards))
	for len(first) > 0 || len(second) > 0 {
		first, out = dropClump(src, first, out)
		second, out = dropClump(src, second, out)
	}
	return out
}

// dropClump moves the next clump of half onto out. An empty half draws nothing.
func dropClump(src rng.Source, half, out []deck.Card) ([]deck.Card, []deck.Card) {
	if len(half) == 0 {
		return half, out
	}
	c := min(draw(src, ClumpMin, ClumpMax), len(half))
	return half[c:], append(out, half[:c]...)
}

// Cut moves a leading 10% to 40% of the deck to the bottom.
type Cut struct{}

func (Cut) Name() string { return "cut" }

func (Cut) Shuffle(src rng.Source, cards []deck.Card) []deck.Card {
	return CutAt(cards, splitAt(len(cards), draw(src, CutMin, CutMax)))
}

// CutAt rotates cards left by k. k is taken modulo the length.
func CutAt(cards []deck.Card, k int) []deck.Card {
	n := len(cards)
	if n == 0 {
		return []deck.Card{}
	}
	k = ((k % n) + n) % n
	out := make([]deck.Card, 0, n)
	out = append(out, cards[k:]...)
	return append(out, cards[:k]...)
}

// Identity leaves the order unchanged.
type Identity struct{}

func (Identity) Name() string { return "identity" }

func (Identity) Shuffle(_ rng.Source, cards []deck.Card) []deck.Card { return clone(cards) }

// Reverse turns the deck over.
type Reverse struct{}

func (Reverse) Name() string { return "reverse" }

func (Reverse) Shuffle(_ rng.Source, cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}
