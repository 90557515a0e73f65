package metrics

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/lost-woods/shuffle/src/deck"
)

// UniformityScore summarizes the spacing between repeat occurrences of each
// value of a feature. Gaps are scaled by count/n so that perfectly even
// spacing scores 1.0; below 1 means clustering, above 1 over-dispersion.
type UniformityScore struct {
	// Weighted is the mean per-value score weighted by how many cards carry
	// the value. It is the primary score.
	Weighted float64 `json:"weighted"`

	Unweighted float64 `json:"unweighted"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`

	// Values counts the distinct values that occur at least twice.
	Values int `json:"values"`

	// Defined is false when the sequence has fewer than two cards or no value
	// recurs; every other field is then zero.
	Defined bool `json:"defined"`
}

// Uniformity scores each feature. A missing feature fails the whole call,
// a degenerate feature is reported as undefined.
func Uniformity(cards []deck.Card, features []string) (map[string]UniformityScore, error) {
	out := make(map[string]UniformityScore, len(features))
	for _, f := range features {
		values, err := column(cards, f)
		if err != nil {
			return nil, err
		}
		out[f] = uniformity(values)
	}
	return out, nil
}

func uniformity(values []deck.Value) UniformityScore {
	n := len(values)
	if n < 2 {
		return UniformityScore{}
	}

	var (
		order    []deck.Value
		counts   = make(map[deck.Value]int)
		lastSeen = make(map[deck.Value]int)
		gaps     = make(map[deck.Value][]float64)
	)
	for i, v := range values {
		if j, ok := lastSeen[v]; ok {
			gaps[v] = append(gaps[v], float64(i-j))
		} else {
			order = append(order, v)
		}
		counts[v]++
		lastSeen[v] = i
	}

	var averages, weights []float64
	for _, v := range order {
		g := gaps[v]
		if len(g) == 0 {
			continue
		}
		mean, _ := stats.Mean(g)
		averages = append(averages, mean*float64(counts[v])/float64(n))
		weights = append(weights, float64(counts[v]))
	}
	if len(averages) == 0 {
		return UniformityScore{}
	}

	unweighted, _ := stats.Mean(averages)
	lo, _ := stats.Min(averages)
	hi, _ := stats.Max(averages)
	return UniformityScore{
		Weighted:   stat.Mean(averages, weights),
		Unweighted: unweighted,
		Min:        lo,
		Max:        hi,
		Values:     len(averages),
		Defined:    true,
	}
}
