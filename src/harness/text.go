package harness

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders reports for one deck as a plain-text comparison table,
// baseline first, then one row per shuffle.
func WriteText(w io.Writer, reports []*Report) error {
	if len(reports) == 0 {
		return nil
	}
	var b strings.Builder
	first := reports[0]
	fmt.Fprintf(&b, "%s (%d cards, %d trials)\n\n", first.Deck, first.Cards, first.Trials)

	b.WriteString("Pairwise distance correlation:\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "%20s: r=%6.3f p=%6.3f\n", r.Shuffle, r.MeanR, r.MeanP)
	}
	b.WriteByte('\n')

	for _, f := range first.FeatureNames() {
		fmt.Fprintf(&b, "%s:\n", f)

		if u, ok := first.Baseline.Uniformity[f]; ok {
			b.WriteString("Uniformity:\n")
			if u.Defined {
				fmt.Fprintf(&b, "%20s: %6.3f\n", "Initial", u.Weighted)
			} else {
				fmt.Fprintf(&b, "%20s: %6s\n", "Initial", "n/a")
			}
			for _, r := range reports {
				s := r.Features[f]
				if s.UniformityTrials == 0 {
					fmt.Fprintf(&b, "%20s: %6s\n", r.Shuffle, "n/a")
					continue
				}
				fmt.Fprintf(&b, "%20s: %6.3f\n", r.Shuffle, s.Uniformity)
			}
		}

		b.WriteString("Sequence Length:\n")
		runs := first.Baseline.Runs[f]
		fmt.Fprintf(&b, "%20s: %6.3f (max: %5.2f)\n", "Initial", runs.Mean, runs.Max)
		for _, r := range reports {
			s := r.Features[f]
			fmt.Fprintf(&b, "%20s: %6.3f (max: %5.2f)\n", r.Shuffle, s.RunMean, s.RunMax)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
