// Command uatsim runs an airspace permit-trading simulation described by
// a scenario file and prints the resulting trades.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openuat/uatsim/agent"
	"github.com/openuat/uatsim/airspace"
	"github.com/openuat/uatsim/core"
	"github.com/openuat/uatsim/scenario"
	"github.com/openuat/uatsim/sim"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "uatsim",
		Short:         "Airspace permit-trading simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd())
	return root
}

func runCmd() *cobra.Command {
	var (
		scenarioPath string
		seedOverride int64
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and print its trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := scenario.Default()
			if scenarioPath != "" {
				loaded, err := scenario.Load(scenarioPath)
				if err != nil {
					return err
				}
				sc = *loaded
			}
			if cmd.Flags().Changed("seed") {
				sc.Seed = seedOverride
			}

			logger, err := buildLogger(verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runScenario(ctx, sc, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "f", "", "scenario YAML file (defaults to the built-in scenario)")
	cmd.Flags().Int64Var(&seedOverride, "seed", 0, "override the scenario seed")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// missionFactory spawns count mission agents at tick zero, drawing their
// missions from the airspace.
func missionFactory[R comparable](space airspace.Airspace[R], count int) sim.Factory[R] {
	return func(t core.Tick, seed int64) []agent.Agent[R] {
		if t > 0 {
			return nil
		}
		rng := rand.New(rand.NewSource(seed))
		agents := make([]agent.Agent[R], 0, count)
		for i := 0; i < count; i++ {
			agents = append(agents, agent.NewMissionAgent(space.RandomMission(rng.Int63())))
		}
		return agents
	}
}

func runScenario(ctx context.Context, sc scenario.Scenario, logger *zap.Logger, out io.Writer) error {
	var space airspace.Airspace[airspace.Point] = airspace.Grid{Width: sc.Grid.Width, Height: sc.Grid.Height}
	factory := missionFactory(space, sc.Agents)

	var journal *sim.JournalWriter[airspace.Point]
	if sc.Journal != "" {
		f, err := os.Create(sc.Journal)
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer func() { _ = f.Close() }()
		journal = sim.NewJournalWriter[airspace.Point](f)
	}

	opts := sim.Options[airspace.Point]{
		TimeWindow: core.Tick(sc.TimeWindow),
		MaxTick:    core.Tick(sc.MaxTick),
		Logger:     logger,
		OnTrade: func(tr sim.Trade[airspace.Point]) {
			if tr.From == core.NoOwner {
				fmt.Fprintf(out, "@%d: agent %d bought permit at (%d, %d, %d) for %.4f\n",
					tr.TransactionTime, tr.To, tr.Location.X, tr.Location.Y, tr.Time, tr.Value)
			} else {
				fmt.Fprintf(out, "@%d: agent %d bought permit at (%d, %d, %d) for %.4f from agent %d\n",
					tr.TransactionTime, tr.To, tr.Location.X, tr.Location.Y, tr.Time, tr.Value, tr.From)
			}
			if journal != nil {
				_ = journal.Append(tr)
			}
		},
	}

	logger.Info("starting scenario",
		zap.String("name", sc.Name),
		zap.Int64("seed", sc.Seed),
		zap.Int("agents", sc.Agents))

	if err := sim.Simulate(ctx, factory, sc.Seed, opts); err != nil {
		return err
	}
	if journal != nil {
		if err := journal.Err(); err != nil {
			return err
		}
	}
	return nil
}
