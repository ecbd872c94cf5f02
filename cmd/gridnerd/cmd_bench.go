package main

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gridnerd/internal/agent"
	"gridnerd/internal/world"
)

// benchCmd plays many seeded random episodes in parallel and reports
// aggregate outcomes. Each episode is fully independent (its own world,
// knowledge base and visited set), so they parallelize trivially.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a batch of random episodes and report aggregate outcomes",
	RunE:  runBench,
}

var (
	benchCount    int
	benchWidth    int
	benchHeight   int
	benchDensity  float64
	benchBaseSeed int64
	benchParallel int
	benchRecord   bool
)

type benchTally struct {
	mu        sync.Mutex
	escaped   int
	withGold  int
	died      int
	stuck     int
	capped    int
	totalStep int
}

func runBench(cmd *cobra.Command, args []string) error {
	parallel := benchParallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	density := benchDensity
	if density == 0 {
		density = cfg.World.PitDensity
	}

	logger.Info("Starting benchmark",
		zap.Int("episodes", benchCount),
		zap.Int("parallel", parallel),
		zap.Float64("pit_density", density))

	var tally benchTally
	var recorded []*agent.Result
	var recordedMu sync.Mutex

	var eg errgroup.Group
	eg.SetLimit(parallel)

	for i := 0; i < benchCount; i++ {
		seed := benchBaseSeed + int64(i)
		eg.Go(func() error {
			w := world.Generate(benchWidth, benchHeight, seed, density)
			result, err := agent.Run(w, cfg.Agent.MaxSteps)
			if err != nil {
				return fmt.Errorf("episode seed=%d: %w", seed, err)
			}
			result.Seed = seed

			tally.mu.Lock()
			tally.totalStep += len(result.Steps)
			switch {
			case result.Escaped && result.GoldHeld:
				tally.withGold++
				tally.escaped++
			case result.Escaped:
				tally.escaped++
			case !result.Alive:
				tally.died++
			case result.Stuck:
				tally.stuck++
			default:
				tally.capped++
			}
			tally.mu.Unlock()

			if benchRecord {
				recordedMu.Lock()
				recorded = append(recorded, result)
				recordedMu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	fmt.Printf("episodes:        %d\n", benchCount)
	fmt.Printf("escaped w/ gold: %d\n", tally.withGold)
	fmt.Printf("escaped empty:   %d\n", tally.escaped-tally.withGold)
	fmt.Printf("died:            %d\n", tally.died)
	fmt.Printf("stuck:           %d\n", tally.stuck)
	fmt.Printf("step-capped:     %d\n", tally.capped)
	if benchCount > 0 {
		fmt.Printf("avg steps:       %.1f\n", float64(tally.totalStep)/float64(benchCount))
	}

	for _, result := range recorded {
		if err := recordEpisode(result); err != nil {
			return err
		}
	}
	if benchRecord {
		fmt.Printf("recorded %d episodes\n", len(recorded))
	}
	return nil
}

func init() {
	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 100, "number of episodes to run")
	benchCmd.Flags().IntVar(&benchWidth, "width", 4, "grid width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 4, "grid height")
	benchCmd.Flags().Float64Var(&benchDensity, "density", 0, "pit density (default from config)")
	benchCmd.Flags().Int64Var(&benchBaseSeed, "seed", 1, "base seed; episode i uses seed+i")
	benchCmd.Flags().IntVar(&benchParallel, "parallel", 0, "max concurrent episodes (default NumCPU)")
	benchCmd.Flags().BoolVar(&benchRecord, "record", false, "persist every episode trace")
}
