package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gridnerd/cmd/gridnerd/ui"
	"gridnerd/internal/agent"
	"gridnerd/internal/config"
	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
	"gridnerd/internal/store"
	"gridnerd/internal/world"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger
	logger *zap.Logger

	// Loaded configuration, resolved once in the persistent pre-run.
	cfg config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "gridnerd",
	Short: "gridNERD - Knowledge-Based Wumpus World Agent",
	Long: `gridNERD simulates a knowledge-based agent exploring the Wumpus World.

The agent reasons with propositional forward chaining over per-cell hazard
clauses, plans with breadth-first search over proven-safe cells, and mirrors
its knowledge into a Google Mangle (Datalog) kernel for diagnostic queries.

Run without arguments to start the interactive viewer.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := logging.Initialize(cfg.Logging.Dir, cfg.Logging.DebugMode, cfg.Logging.Level); err != nil {
			return err
		}

		// The interactive viewer owns the terminal; skip the CLI logger there.
		if cmd.Use == "gridnerd" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Run(cfg)
	},
}

// runCmd plays one headless episode.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one episode headlessly and print the decision trace",
	Long: `Plays a full episode: each step senses the current cell, updates the
knowledge base by forward chaining, and issues one action chosen by the
decision policy. Exits 0 when the agent escapes with the gold.`,
	RunE: runEpisode,
}

var (
	runSeed     int64
	runWidth    int
	runHeight   int
	runRandom   bool
	runMaxSteps int
	runRecord   bool
)

func runEpisode(cmd *cobra.Command, args []string) error {
	w := buildWorld(runRandom, runWidth, runHeight, runSeed)
	logger.Info("Starting episode",
		zap.Int("width", w.Width),
		zap.Int("height", w.Height),
		zap.Bool("random", runRandom),
		zap.Int64("seed", runSeed))

	maxSteps := runMaxSteps
	if maxSteps == 0 {
		maxSteps = cfg.Agent.MaxSteps
	}

	result, err := agent.Run(w, maxSteps)
	if err != nil {
		return err
	}
	result.Seed = runSeed

	for _, st := range result.Steps {
		fmt.Printf("step %3d  %-7s %s\n", st.Step, st.Pos, st.Status)
	}
	fmt.Printf("\nepisode %s: escaped=%v alive=%v gold=%v steps=%d\n",
		result.ID, result.Escaped, result.Alive, result.GoldHeld, len(result.Steps))

	if runRecord || cfg.Store.Record {
		if err := recordEpisode(result); err != nil {
			return err
		}
		fmt.Printf("recorded as %s\n", result.ID)
	}

	if !result.Escaped || !result.GoldHeld {
		os.Exit(1)
	}
	return nil
}

// buildWorld constructs the configured world, honoring flag overrides.
func buildWorld(random bool, width, height int, seed int64) *world.World {
	if width == 0 {
		width = cfg.World.Width
	}
	if height == 0 {
		height = cfg.World.Height
	}
	if !random && cfg.World.Benchmark && width == 4 && height == 4 {
		return world.NewBenchmark()
	}
	if seed == 0 {
		seed = cfg.World.Seed
	}
	return world.Generate(width, height, seed, cfg.World.PitDensity)
}

// recordEpisode persists a finished episode to the configured store.
func recordEpisode(result *agent.Result) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.SaveEpisode(episodeRecord(result), stepRows(result))
}

// episodeRecord converts an agent result to its persistence mirror.
func episodeRecord(result *agent.Result) store.EpisodeRecord {
	return store.EpisodeRecord{
		ID:       result.ID,
		Width:    result.Width,
		Height:   result.Height,
		Seed:     result.Seed,
		Steps:    len(result.Steps),
		Escaped:  result.Escaped,
		Alive:    result.Alive,
		GoldHeld: result.GoldHeld,
		Stuck:    result.Stuck,
	}
}

func stepRows(result *agent.Result) []store.StepRow {
	rows := make([]store.StepRow, 0, len(result.Steps))
	for _, st := range result.Steps {
		rows = append(rows, store.StepRow{
			Step:    st.Step,
			X:       st.Pos.X,
			Y:       st.Pos.Y,
			Heading: st.Heading.String(),
			Status:  st.Status,
			Facts:   st.Facts,
			Breeze:  st.Percepts.Breeze,
			Stench:  st.Percepts.Stench,
			Glitter: st.Percepts.Glitter,
		})
	}
	return rows
}

// stepPercepts reverses stepRows for knowledge reconstruction.
func stepPercepts(row store.StepRow) (grid.Coord, grid.Percepts) {
	return grid.Coord{X: row.X, Y: row.Y}, grid.Percepts{
		Breeze:  row.Breeze,
		Stench:  row.Stench,
		Glitter: row.Glitter,
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "seed for random world generation")
	runCmd.Flags().IntVar(&runWidth, "width", 0, "grid width (default from config)")
	runCmd.Flags().IntVar(&runHeight, "height", 0, "grid height (default from config)")
	runCmd.Flags().BoolVar(&runRandom, "random", false, "generate a random world instead of the benchmark layout")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "step bound for the episode (default from config)")
	runCmd.Flags().BoolVar(&runRecord, "record", false, "persist the episode trace to the store")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
