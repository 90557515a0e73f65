package deck

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Value is a feature value. Only string and int are accepted: metrics compare
// values with == and use them as map keys.
type Value = any

// ErrUnsupportedValue is the panic value wrapped by Builder.Add for a feature
// value that is neither a string nor an int.
var ErrUnsupportedValue = errors.New("unsupported feature value")

func checkValue(name string, v Value) error {
	switch v.(type) {
	case string, int:
		return nil
	}
	return fmt.Errorf("%w: %s is %T", ErrUnsupportedValue, name, v)
}

// Card is an immutable set of named features with a serial identity.
//
// The identity is assigned when the deck is built and never derives from the
// features: two cards with identical features are still different cards.
type Card struct {
	id       int
	features map[string]Value
}

func (c Card) ID() int { return c.id }

func (c Card) Feature(name string) (Value, bool) {
	v, ok := c.features[name]
	return v, ok
}

// FeatureNames returns the card's feature names in sorted order.
func (c Card) FeatureNames() []string {
	names := make([]string, 0, len(c.features))
	for k := range c.features {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ContentID hashes the sorted feature mapping. It is meant for display and
// debugging only, cards with equal features share a ContentID.
func (c Card) ContentID() string {
	sum := sha256.Sum256([]byte(c.String()))
	return hex.EncodeToString(sum[:8])
}

func (c Card) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range c.FeatureNames() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, c.features[k])
	}
	b.WriteByte('}')
	return b.String()
}

// IDs returns the identities of cards in order.
func IDs(cards []Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.id
	}
	return out
}
