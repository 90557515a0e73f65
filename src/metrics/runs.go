package metrics

import (
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/lost-woods/shuffle/src/deck"
)

// NumberRun is a virtual feature: a run continues while each card's Number
// is exactly one more than the previous card's.
const NumberRun = deck.FeatureNumber + "-run"

type RunStats struct {
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// ExpandedFeatures appends NumberRun when the Number feature is analyzed.
func ExpandedFeatures(features []string) []string {
	out := slices.Clone(features)
	if slices.Contains(features, deck.FeatureNumber) && !slices.Contains(features, NumberRun) {
		out = append(out, NumberRun)
	}
	return out
}

// Runs measures run lengths for every feature in ExpandedFeatures(features).
func Runs(cards []deck.Card, features []string) (map[string]RunStats, error) {
	expanded := ExpandedFeatures(features)
	out := make(map[string]RunStats, len(expanded))
	for _, f := range expanded {
		source, continues := f, same
		if f == NumberRun {
			source, continues = deck.FeatureNumber, increments
		}
		values, err := column(cards, source)
		if err != nil {
			return nil, err
		}
		out[f] = runStats(runLengths(values, continues))
	}
	return out, nil
}

func runLengths(values []deck.Value, continues func(prev, cur deck.Value) bool) []float64 {
	var runs []float64
	var prev deck.Value
	for _, v := range values {
		if len(runs) == 0 || !continues(prev, v) {
			runs = append(runs, 0)
		}
		runs[len(runs)-1]++
		prev = v
	}
	return runs
}

func runStats(runs []float64) RunStats {
	if len(runs) == 0 {
		return RunStats{}
	}
	mean, _ := stats.Mean(runs)
	longest, _ := stats.Max(runs)
	return RunStats{Mean: mean, Max: longest, Count: len(runs)}
}

func same(prev, cur deck.Value) bool { return prev == cur }

func increments(prev, cur deck.Value) bool {
	p, ok := prev.(int)
	if !ok {
		return false
	}
	c, ok := cur.(int)
	return ok && p+1 == c
}
