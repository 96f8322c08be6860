// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/DavidAllison/sixvertex-sim/sim"
	"github.com/DavidAllison/sixvertex-sim/sim/sinks"
)

var (
	upperPath    string
	lowerPath    string
	rows         int
	cols         int
	weightA1     float64
	weightA2     float64
	weightB1     float64
	weightB2     float64
	weightC1     float64
	weightC2     float64
	emitEvery    int64
	cdensityStep int
	flipBudget   int64
	sticky       bool
	seed         int64
	logLevel     string
	outDir       string
	configPath   string
)

var rootCmd = &cobra.Command{
	Use:   "sixvertex-sim",
	Short: "Metropolis-Hastings sampler for the six-vertex lattice model",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the six-vertex MCMC sampler",
	RunE:  runSampler,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML run-config file; flags override its values")
	runCmd.Flags().StringVar(&upperPath, "upper", "", "path to the upper lattice input file")
	runCmd.Flags().StringVar(&lowerPath, "lower", "", "path to the lower lattice input file")
	runCmd.Flags().IntVar(&rows, "rows", 0, "lattice row count R")
	runCmd.Flags().IntVar(&cols, "cols", 0, "lattice column count C")
	runCmd.Flags().Float64Var(&weightA1, "a1", 1.0, "Boltzmann weight for vertex type a1")
	runCmd.Flags().Float64Var(&weightA2, "a2", 1.0, "Boltzmann weight for vertex type a2")
	runCmd.Flags().Float64Var(&weightB1, "b1", 1.0, "Boltzmann weight for vertex type b1")
	runCmd.Flags().Float64Var(&weightB2, "b2", 1.0, "Boltzmann weight for vertex type b2")
	runCmd.Flags().Float64Var(&weightC1, "c1", 1.0, "Boltzmann weight for vertex type c1")
	runCmd.Flags().Float64Var(&weightC2, "c2", 1.0, "Boltzmann weight for vertex type c2")
	runCmd.Flags().Int64Var(&emitEvery, "emit-every", 1000, "flip-count interval between sink emissions, applied uniformly to all sink types")
	runCmd.Flags().IntVar(&cdensityStep, "cdensity-step", 2, "c-density neighbourhood step (even, non-negative)")
	runCmd.Flags().Int64Var(&flipBudget, "budget", 0, "total flip budget; 0 runs until cancelled")
	runCmd.Flags().BoolVar(&sticky, "sticky", false, "enforce the upper-height >= lower-height sticky coupling")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&outDir, "out", "", "output directory; defaults to a name derived from weights and dimensions")

	rootCmd.AddCommand(runCmd)
}

func runSampler(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		if err := applyConfigFile(configPath, cmd.Flags()); err != nil {
			return err
		}
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("cmd: invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("cmd: rows and cols must both be positive (got rows=%d cols=%d)", rows, cols)
	}

	upper, err := loadLattice(upperPath, rows, cols)
	if err != nil {
		return err
	}
	lower, err := loadLattice(lowerPath, rows, cols)
	if err != nil {
		return err
	}

	weights := sim.NewWeights(weightA1, weightA2, weightB1, weightB2, weightC1, weightC2)
	engine := sim.NewEngine(upper, lower, weights, sticky, sim.NewSimulationKey(seed))

	if outDir == "" {
		outDir = defaultOutputDir(weights, rows, cols)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("cmd: creating output directory %q: %w", outDir, err)
	}

	summary := sinks.NewSummary(filepath.Join(outDir, "matrix.end"))

	queue, closers, err := buildSinks(outDir, engine, summary)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	logrus.Infof("starting sampler: rows=%d cols=%d seed=%d sticky=%v budget=%d out=%s",
		rows, cols, seed, sticky, flipBudget, outDir)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runLoop(ctx, engine, queue)

	logrus.Infof("sampler complete: completed=%d failed=%d", engine.FlipCompleted, engine.FlipFailed)

	if err := summary.Close(engine); err != nil {
		return fmt.Errorf("cmd: writing summary: %w", err)
	}
	return nil
}

// runLoop drives the engine one Step at a time, running due emissions after
// every step, honouring budget/cancellation exactly as sim.Engine.Run does
// — inlined here rather than delegated to Run so the emission queue gets a
// chance to fire between every single flip, not just at Run's boundaries.
func runLoop(ctx context.Context, e *sim.Engine, q *sim.EmissionQueue) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if flipBudget > 0 && e.FlipCompleted+e.FlipFailed >= flipBudget {
			return
		}
		e.Step()
		q.RunDue(e)
	}
}

func loadLattice(path string, rows, cols int) (*sim.Lattice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &sim.ErrInputOpen{Path: path, Err: err}
	}
	defer f.Close()

	lat, err := sim.ParseLattice(f, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("cmd: parsing %q: %w", path, err)
	}
	return lat, nil
}

// defaultOutputDir names the run directory from the six weights and lattice
// dimensions.
func defaultOutputDir(w sim.Weights, rows, cols int) string {
	return fmt.Sprintf("run-%dx%d-a1_%g-a2_%g-b1_%g-b2_%g-c1_%g-c2_%g",
		rows, cols, w[sim.A1], w[sim.A2], w[sim.B1], w[sim.B2], w[sim.C1], w[sim.C2])
}
