package harness

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/lost-woods/shuffle/src/metrics"
)

type BaselineScores struct {
	Uniformity map[string]metrics.UniformityScore `json:"uniformity"`
	Runs       map[string]metrics.RunStats        `json:"runs"`
}

// FeatureSummary averages one feature's scores across trials.
type FeatureSummary struct {
	// Uniformity is the mean weighted uniformity over the trials where it
	// was defined; UniformityTrials counts those trials.
	Uniformity       float64 `json:"uniformity"`
	UniformityTrials int     `json:"uniformity_trials"`

	RunMean float64 `json:"run_mean"`
	RunMax  float64 `json:"run_max"`
}

type Report struct {
	ID      uuid.UUID `json:"id"`
	Deck    string    `json:"deck"`
	Shuffle string    `json:"shuffle"`
	Cards   int       `json:"cards"`
	Trials  int       `json:"trials"`

	Baseline BaselineScores `json:"baseline"`

	// MeanR and MeanP are the headline score: the average pairwise-distance
	// correlation against the pristine order and its average p-value.
	MeanR float64 `json:"mean_r"`
	MeanP float64 `json:"mean_p"`

	Features map[string]FeatureSummary `json:"features"`
	Elapsed  time.Duration             `json:"elapsed"`
}

// FeatureNames returns the report's features, sorted.
func (r *Report) FeatureNames() []string {
	out := make([]string, 0, len(r.Features))
	for f := range r.Features {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// reduce averages per-trial results. It runs only after every trial has
// finished, so the order trials completed in does not matter.
func reduce(results []trialResult, features []string) *Report {
	n := len(results)
	rs := make([]float64, n)
	ps := make([]float64, n)
	for i, t := range results {
		rs[i] = t.corr.R
		ps[i] = t.corr.P
	}
	meanR, _ := stats.Mean(rs)
	meanP, _ := stats.Mean(ps)

	summaries := make(map[string]FeatureSummary)
	for _, f := range metrics.ExpandedFeatures(features) {
		var uniform, runMeans, runMaxes []float64
		for _, t := range results {
			if u, ok := t.uniformity[f]; ok && u.Defined {
				uniform = append(uniform, u.Weighted)
			}
			if rs, ok := t.runs[f]; ok {
				runMeans = append(runMeans, rs.Mean)
				runMaxes = append(runMaxes, rs.Max)
			}
		}

		var s FeatureSummary
		if len(uniform) > 0 {
			s.Uniformity, _ = stats.Mean(uniform)
			s.UniformityTrials = len(uniform)
		}
		if len(runMeans) > 0 {
			s.RunMean, _ = stats.Mean(runMeans)
			s.RunMax, _ = stats.Mean(runMaxes)
		}
		summaries[f] = s
	}

	return &Report{Trials: n, MeanR: meanR, MeanP: meanP, Features: summaries}
}
