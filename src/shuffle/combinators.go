package shuffle

import (
	"fmt"
	"sort"

	"github.com/lost-woods/shuffle/src/deck"
	"github.com/lost-woods/shuffle/src/rng"
)

// Repeat applies Of Times times, feeding each result into the next pass.
// Zero or negative Times is the identity.
type Repeat struct {
	Of    Shuffler
	Times int
}

func (r Repeat) Name() string { return fmt.Sprintf("%s x%d", r.Of.Name(), r.Times) }

func (r Repeat) Shuffle(src rng.Source, cards []deck.Card) []deck.Card {
	out := clone(cards)
	for i := 0; i < r.Times; i++ {
		out = r.Of.Shuffle(src, out)
	}
	return out
}

// Sequence applies First, then Then to its result.
type Sequence struct {
	First, Then Shuffler
}

func (s Sequence) Name() string { return s.First.Name() + " + " + s.Then.Name() }

func (s Sequence) Shuffle(src rng.Source, cards []deck.Card) []deck.Card {
	return s.Then.Shuffle(src, s.First.Shuffle(src, cards))
}

// Chain sequences any number of shufflers left to right.
func Chain(first Shuffler, rest ...Shuffler) Shuffler {
	out := first
	for _, s := range rest {
		out = Sequence{First: out, Then: s}
	}
	return out
}

var registry = map[string]Shuffler{
	"uniform":          Uniform{},
	"identity":         Identity{},
	"reverse":          Reverse{},
	"riffle":           PerfectRiffle{},
	"riffle-x8":        Repeat{Of: PerfectRiffle{}, Times: 8},
	"imperfect":        ImperfectRiffle{},
	"imperfect-x7":     Repeat{Of: ImperfectRiffle{}, Times: 7},
	"cut":              Cut{},
	"imperfect-cut-x3": Repeat{Of: Sequence{First: ImperfectRiffle{}, Then: Cut{}}, Times: 3},
	"casino":           Chain(ImperfectRiffle{}, ImperfectRiffle{}, Cut{}, ImperfectRiffle{}, ImperfectRiffle{}, Cut{}),
}

// Lookup returns a registered shuffler by name.
func Lookup(name string) (Shuffler, bool) {
	s, ok := registry[name]
	return s, ok
}

func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
