package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lost-woods/shuffle/src/config"
	"github.com/lost-woods/shuffle/src/deck"
	"github.com/lost-woods/shuffle/src/harness"
	"github.com/lost-woods/shuffle/src/rng"
	"github.com/lost-woods/shuffle/src/server"
	"github.com/lost-woods/shuffle/src/shuffle"
)

var (
	zapLogger, _ = zap.NewProduction()
	log          = zapLogger.Sugar()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	_ = zapLogger.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shuffle",
		Short:         "Card shuffle simulator and randomness scorer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newReportCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve experiments over HTTP",
		Long: `Serve experiments over HTTP.

Configuration is read from the environment and ./.env:
- PORT (default: 777), API_KEY
- RNG_SOURCE=pcg|serial, SEED
- SERIAL_DEVICE_NAME, SERIAL_BAUD_RATE, SERIAL_READ_TIMEOUT, RNG_HEALTH_INTERVAL
- TRIALS, MAX_TRIALS, WORKERS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			entropy, err := openEntropy(cfg)
			if err != nil {
				return err
			}

			log.Infow("serving", "port", cfg.Port, "source", cfg.Source, "workers", cfg.Workers)
			server.New(cmd.Context(), cfg, entropy, log).RunOrDie()
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var decks, shuffles string
	var seed uint64
	var trials int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a comparison table of shuffles for each deck",
		Long: `Run every shuffle against every deck and print the averaged scores.

Example: shuffle report --decks poker,bohnanza --shuffles riffle,imperfect-x7,casino --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if trials > 0 {
				cfg.Trials = trials
			}
			entropy, err := openEntropy(cfg)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), cmd.OutOrStdout(), cfg, entropy, splitNames(decks), splitNames(shuffles))
		},
	}

	cmd.Flags().StringVar(&decks, "decks", "bohnanza,poker", "Comma separated decks to compare")
	cmd.Flags().StringVar(&shuffles, "shuffles", "uniform,riffle,imperfect,imperfect-x7,cut,casino", "Comma separated shuffles to compare")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "PCG master seed (default: SEED, or the clock)")
	cmd.Flags().IntVar(&trials, "trials", 0, "Trials per shuffle (default: TRIALS)")

	return cmd
}

// openEntropy opens the hardware source when configured. The zero Entropy
// means seeded PCG streams.
func openEntropy(cfg *config.Config) (server.Entropy, error) {
	if cfg.Source != config.SourceSerial {
		return server.Entropy{}, nil
	}
	r, h, err := rng.NewSerialRNG(cfg.Serial)
	if err != nil {
		return server.Entropy{}, err
	}
	return server.Entropy{Reader: r, Health: h}, nil
}

func splitNames(list string) []string {
	var out []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func runReport(ctx context.Context, w io.Writer, cfg *config.Config, entropy server.Entropy, deckNames, shuffleNames []string) error {
	var shufflers []shuffle.Shuffler
	for _, name := range shuffleNames {
		s, ok := shuffle.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown shuffle %q", name)
		}
		shufflers = append(shufflers, s)
	}
	if len(shufflers) == 0 {
		return errors.New("no shuffles given")
	}

	factories := make([]deck.Factory, 0, len(deckNames))
	for _, name := range deckNames {
		f, ok := deck.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown deck %q", name)
		}
		factories = append(factories, f)
	}

	opts := harness.Options{Trials: cfg.Trials, Workers: cfg.Workers, Logger: log}
	switch {
	case entropy.Reader != nil:
		opts.Seeder = rng.NewReaderSeeder(entropy.Reader, entropy.Health)
	case cfg.Seed != 0:
		opts.Seeder = rng.PCGSeeder{Seed: cfg.Seed}
	}

	for _, factory := range factories {
		reports, err := harness.Compare(ctx, factory, shufflers, opts)
		if err != nil {
			return err
		}
		if err := harness.WriteText(w, reports); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
