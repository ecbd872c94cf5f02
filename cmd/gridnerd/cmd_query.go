package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gridnerd/internal/agent"
	"gridnerd/internal/core"
	"gridnerd/internal/grid"
	"gridnerd/internal/store"
	"gridnerd/internal/world"
)

// queryCmd loads agent knowledge into the Mangle kernel and prints the facts
// matching a predicate. Derived predicates (frontier, risky, hazard,
// reachable) come from the kernel's diagnostic rules.
var queryCmd = &cobra.Command{
	Use:   "query <predicate>",
	Short: "Query agent knowledge as Datalog",
	Long: `Loads agent knowledge into the diagnostic Mangle kernel and prints the
facts of one predicate.

Without flags the knowledge comes from a fresh benchmark episode. With
--episode the knowledge is reconstructed from a recorded trace by replaying
its percepts through the forward chainer.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var queryEpisode string

func runQuery(cmd *cobra.Command, args []string) error {
	predicate := args[0]

	var engine *core.Engine
	if queryEpisode != "" {
		var err error
		engine, err = reconstructKnowledge(queryEpisode)
		if err != nil {
			return err
		}
	} else {
		w := buildWorld(false, 0, 0, 0)
		result, err := agent.Run(w, cfg.Agent.MaxSteps)
		if err != nil {
			return err
		}
		logger.Debug("Fresh episode for query", zap.String("id", result.ID))
		// Re-run to keep the engine: agent.Run owns its agent, so replay the
		// recorded percepts instead of exposing internals.
		engine = core.NewEngine(w.Width, w.Height)
		topo := world.New(w.Width, w.Height, nil, grid.Coord{}, grid.Coord{})
		for _, st := range result.Steps {
			if err := engine.Observe(st.Pos, topo.Neighbors(st.Pos), st.Percepts); err != nil {
				return err
			}
		}
	}

	kernel := core.NewKernel()
	if err := kernel.Load(engine.Export(world.Start)); err != nil {
		return err
	}

	facts, err := kernel.Query(predicate)
	if err != nil {
		known := strings.Join(kernel.Predicates(), ", ")
		return fmt.Errorf("%w (declared predicates: %s)", err, known)
	}

	if len(facts) == 0 {
		fmt.Printf("no %s facts\n", predicate)
		return nil
	}
	for _, f := range facts {
		fmt.Println(f)
	}
	return nil
}

// reconstructKnowledge rebuilds the knowledge base of a recorded episode by
// replaying its stored percepts through a fresh forward chainer.
func reconstructKnowledge(id string) (*core.Engine, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	ep, err := st.LoadEpisode(id)
	if err != nil {
		return nil, err
	}
	steps, err := st.LoadSteps(id)
	if err != nil {
		return nil, err
	}

	engine := core.NewEngine(ep.Width, ep.Height)
	topo := world.New(ep.Width, ep.Height, nil, grid.Coord{}, grid.Coord{})
	for _, row := range steps {
		pos, percepts := stepPercepts(row)
		if err := engine.Observe(pos, topo.Neighbors(pos), percepts); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

func init() {
	queryCmd.Flags().StringVar(&queryEpisode, "episode", "", "recorded episode id to reconstruct knowledge from")
}
