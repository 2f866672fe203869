package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sabrmetrics/lib/chrono"
	"sabrmetrics/lib/mlb"
	"sabrmetrics/lib/restyutil"
	"sabrmetrics/lib/scraper"
	"sabrmetrics/lib/telemetry"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	verbose  bool
	dumpDir  string
	asOf     string
	timezone string
	timeout  time.Duration
	rps      float64
)

// state shared by every subcommand, filled in before any of them runs
var (
	clock  chrono.API
	output restyutil.InstrumentOutput
	client *scraper.Client
	api    mlb.API
	tel    telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:           "sabr",
	Short:         "sabr queries the MLB stats API and the Smart Fantasy Baseball tools page.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initSlog(verbose)

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "sabr")
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		clock, err = newClock(asOf, timezone)
		if err != nil {
			return err
		}

		if dumpDir != "" {
			fsOutput, err := restyutil.NewFilesystemOutput(dumpDir)
			if err != nil {
				return err
			}
			output = fsOutput
		}

		client = scraper.NewClient(scraper.Options{
			Timeout:           timeout,
			RequestsPerSecond: rps,
			Output:            output,
		})
		api = mlb.NewAPI(mlb.Options{Client: client, Clock: clock})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := tel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output, including every request.")
	flags.StringVar(&dumpDir, "dump", "", "Write full request/response dumps to this directory (requires --verbose).")
	flags.StringVar(&asOf, "as-of", "", "Pretend today is this date (YYYY-MM-DD) when computing defaults.")
	flags.StringVar(&timezone, "timezone", "America/New_York", "Location used to decide what day it is.")
	flags.DurationVar(&timeout, "timeout", scraper.DefaultTimeout, "Timeout of a single request.")
	flags.Float64Var(&rps, "rate", 0, "Maximum requests per second, 0 disables the limit.")
}

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func newClock(asOf, timezone string) (chrono.API, error) {
	standard, err := chrono.NewStandard(timezone)
	if err != nil {
		return nil, err
	}
	if asOf == "" {
		return standard, nil
	}
	at, err := time.ParseInLocation(dateLayout, asOf, standard.Location())
	if err != nil {
		return nil, fmt.Errorf("--as-of: %w", err)
	}
	return chrono.Fixed{At: at}, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
