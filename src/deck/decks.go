package deck

import "sort"

const (
	FeatureSuit   = "Suit"
	FeatureColor  = "Color"
	FeatureNumber = "Number"
	FeatureName   = "Name"
	FeatureLabel  = "Label"
)

var suitColors = []struct{ suit, color string }{
	{"Spades", "Black"},
	{"Hearts", "Red"},
	{"Clubs", "Black"},
	{"Diamonds", "Red"},
}

// Poker is a single 52-card deck, suits in new-deck order, numbered 1..13.
func Poker() Deck { return Standard(1, false) }

// Standard builds a shoe of numDecks poker decks. Jokers are numbered 0 so
// every card carries the same features.
func Standard(numDecks int, jokers bool) Deck {
	name := "Poker Deck"
	if numDecks > 1 || jokers {
		name = "Poker Shoe"
	}
	b := NewBuilder(name, FeatureSuit, FeatureColor, FeatureNumber)

	for d := 0; d < numDecks; d++ {
		for _, sc := range suitColors {
			for n := 1; n <= 13; n++ {
				b.Add(map[string]Value{FeatureSuit: sc.suit, FeatureColor: sc.color, FeatureNumber: n})
			}
		}
		if jokers {
			b.Add(map[string]Value{FeatureSuit: "Joker", FeatureColor: "Red", FeatureNumber: 0})
			b.Add(map[string]Value{FeatureSuit: "Joker", FeatureColor: "Black", FeatureNumber: 0})
		}
	}
	return b.Build()
}

var beans = []struct {
	name  string
	count int
}{
	{"Coffee Bean", 24},
	{"Wax Bean", 22},
	{"Blue Bean", 20},
	{"Chili Bean", 18},
	{"Stink Bean", 16},
	{"Green Bean", 14},
	{"Soy Bean", 12},
	{"Black Eyed Bean", 10},
	{"Red Bean", 8},
}

// Bohnanza is the 144-card bean deck, sorted by variety.
func Bohnanza() Deck {
	b := NewBuilder("Bohnanza Deck", FeatureName)
	for _, bean := range beans {
		b.AddN(bean.count, map[string]Value{FeatureName: bean.name})
	}
	return b.Build()
}

// Labels builds a single-feature deck, one card per label in order.
func Labels(labels ...string) Deck {
	b := NewBuilder("Label Deck", FeatureLabel)
	for _, l := range labels {
		b.Add(map[string]Value{FeatureLabel: l})
	}
	return b.Build()
}

var registry = map[string]Factory{
	"poker":        Poker,
	"poker-jokers": func() Deck { return Standard(1, true) },
	"shoe-6":       func() Deck { return Standard(6, false) },
	"bohnanza":     Bohnanza,
	"abcd":         func() Deck { return Labels("A", "B", "C", "D") },
}

func Lookup(name string) (Factory, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names lists the registered deck names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
