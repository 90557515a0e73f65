// Package metrics scores how random a card sequence looks.
//
// Three independent measures are provided: positional-recurrence uniformity
// per feature, run lengths per feature, and the correlation between pairwise
// card distances in two arrangements of the same cards.
package metrics

import (
	"errors"
	"fmt"

	"github.com/lost-woods/shuffle/src/deck"
)

var (
	// ErrInvalidFeature means a requested feature is missing from a card.
	ErrInvalidFeature = errors.New("invalid feature")
	// ErrPermutationViolation means a shuffled sequence does not hold the same
	// card instances as its baseline.
	ErrPermutationViolation = errors.New("permutation violation")
	// ErrDegenerateInput means there is too little data for a statistic.
	ErrDegenerateInput = errors.New("degenerate input")
)

// column extracts one feature's values in sequence order.
func column(cards []deck.Card, feature string) ([]deck.Value, error) {
	out := make([]deck.Value, len(cards))
	for i, c := range cards {
		v, ok := c.Feature(feature)
		if !ok {
			return nil, fmt.Errorf("%w: card %d has no %q", ErrInvalidFeature, c.ID(), feature)
		}
		out[i] = v
	}
	return out, nil
}
