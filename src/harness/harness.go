// Package harness runs repeated independent trials of a shuffle against a
// pristine deck and reduces the per-trial scores to averages.
package harness

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lost-woods/shuffle/src/deck"
	"github.com/lost-woods/shuffle/src/metrics"
	"github.com/lost-woods/shuffle/src/rng"
	"github.com/lost-woods/shuffle/src/shuffle"
)

var ErrNoTrials = errors.New("trial count must be positive")

type Options struct {
	Trials int
	// Workers > 1 spreads trials over goroutines. Results do not depend on
	// the worker count: trial i always draws from Seeder.Stream(i).
	Workers int
	// Seeder defaults to a PCGSeeder seeded from the clock.
	Seeder rng.Seeder
	Logger *zap.SugaredLogger
	// Progress, if set, is called after each trial. It may be called from
	// several goroutines at once.
	Progress func(done, total int)
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Workers > o.Trials {
		o.Workers = max(1, o.Trials)
	}
	if o.Seeder == nil {
		o.Seeder = rng.PCGSeeder{Seed: uint64(time.Now().UnixNano())}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	return o
}

// trialResult is one scored permutation. Only these scalars outlive the trial.
type trialResult struct {
	corr       metrics.Correlation
	uniformity map[string]metrics.UniformityScore
	runs       map[string]metrics.RunStats
}

// Run builds the deck once, scores its pristine order, then shuffles that
// same pristine order opts.Trials times. A permutation violation or missing
// feature in any trial aborts the run.
func Run(ctx context.Context, factory deck.Factory, s shuffle.Shuffler, opts Options) (*Report, error) {
	if opts.Trials < 1 {
		return nil, ErrNoTrials
	}
	opts = opts.withDefaults()
	start := time.Now()

	d := factory()
	pristine := d.Cards()
	features := d.Features()
	log := opts.Logger.With("deck", d.Name(), "shuffle", s.Name())

	baseU, err := metrics.Uniformity(pristine, features)
	if err != nil {
		return nil, err
	}
	baseRuns, err := metrics.Runs(pristine, features)
	if err != nil {
		return nil, err
	}
	baseline := metrics.NewBaseline(pristine)
	if baseline.Pairs() < 3 {
		return nil, fmt.Errorf("%w: %s has %d cards", metrics.ErrDegenerateInput, d.Name(), len(pristine))
	}

	id := uuid.New()
	log.Infow("experiment started", "id", id, "cards", len(pristine), "trials", opts.Trials, "workers", opts.Workers)

	results := make([]trialResult, opts.Trials)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			for i := w; i < opts.Trials; i += opts.Workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := runTrial(opts.Seeder.Stream(uint64(i)), s, pristine, features, baseline)
				if err != nil {
					return fmt.Errorf("trial %d: %w", i, err)
				}
				results[i] = r
				if opts.Progress != nil {
					opts.Progress(int(done.Add(1)), opts.Trials)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorw("experiment aborted", "id", id, "error", err)
		return nil, err
	}

	report := reduce(results, features)
	report.ID = id
	report.Deck = d.Name()
	report.Shuffle = s.Name()
	report.Cards = len(pristine)
	report.Baseline = BaselineScores{Uniformity: baseU, Runs: baseRuns}
	report.Elapsed = time.Since(start)

	log.Infow("experiment finished", "id", id, "mean_r", report.MeanR, "mean_p", report.MeanP, "elapsed", report.Elapsed)
	return report, nil
}

func runTrial(src rng.Source, s shuffle.Shuffler, pristine []deck.Card, features []string, baseline *metrics.Baseline) (trialResult, error) {
	shuffled := s.Shuffle(src, pristine)
	if e, ok := src.(interface{ Err() error }); ok {
		if err := e.Err(); err != nil {
			return trialResult{}, err
		}
	}

	corr, err := baseline.Correlate(shuffled)
	if err != nil {
		return trialResult{}, err
	}
	u, err := metrics.Uniformity(shuffled, features)
	if err != nil {
		return trialResult{}, err
	}
	runs, err := metrics.Runs(shuffled, features)
	if err != nil {
		return trialResult{}, err
	}
	return trialResult{corr: corr, uniformity: u, runs: runs}, nil
}

// Compare runs each shuffler against a fresh copy of the same deck.
func Compare(ctx context.Context, factory deck.Factory, shufflers []shuffle.Shuffler, opts Options) ([]*Report, error) {
	out := make([]*Report, 0, len(shufflers))
	for _, s := range shufflers {
		r, err := Run(ctx, factory, s, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		out = append(out, r)
	}
	return out, nil
}
