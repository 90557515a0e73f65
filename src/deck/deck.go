package deck

// Deck provides an ordered card sequence and the features worth analyzing.
type Deck interface {
	Name() string
	// Cards returns a fresh copy of the deck's sequence in its original order.
	Cards() []Card
	Features() []string
}

// Factory builds a pristine deck.
type Factory func() Deck

type Builder struct {
	name     string
	features []string
	cards    []Card
}

func NewBuilder(name string, features ...string) *Builder {
	return &Builder{name: name, features: append([]string(nil), features...)}
}

// Add appends one card. The feature map is copied. A value that is not a
// string or int panics with ErrUnsupportedValue.
func (b *Builder) Add(features map[string]Value) *Builder {
	f := make(map[string]Value, len(features))
	for k, v := range features {
		if err := checkValue(k, v); err != nil {
			panic(err)
		}
		f[k] = v
	}
	b.cards = append(b.cards, Card{id: len(b.cards), features: f})
	return b
}

// AddN appends n cards with the same features, each with its own identity.
func (b *Builder) AddN(n int, features map[string]Value) *Builder {
	for i := 0; i < n; i++ {
		b.Add(features)
	}
	return b
}

func (b *Builder) Build() *Static {
	return &Static{
		name:     b.name,
		features: append([]string(nil), b.features...),
		cards:    append([]Card(nil), b.cards...),
	}
}

// Static is a deck whose sequence is fixed at construction.
type Static struct {
	name     string
	features []string
	cards    []Card
}

func (d *Static) Name() string { return d.name }

func (d *Static) Cards() []Card { return append([]Card(nil), d.cards...) }

func (d *Static) Features() []string { return append([]string(nil), d.features...) }

func (d *Static) Len() int { return len(d.cards) }
