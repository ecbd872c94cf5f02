package core

import (
	"errors"
	"fmt"

	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
)

// maxPropagationPasses bounds the forward-chaining loop. Monotonicity over a
// finite grid guarantees convergence long before this; hitting the cap means
// the monotonicity invariant is broken somewhere.
const maxPropagationPasses = 100

// ErrDiverged reports that forward chaining failed to reach a fixed point
// within the pass cap. It is an internal logic fault, never a normal exit.
var ErrDiverged = errors.New("forward chaining exceeded pass cap without reaching a fixed point")

// Engine is the per-episode knowledge base: one fact store plus the two
// hazard clause families. It is owned by a single agent and never shared.
type Engine struct {
	width, height int
	facts         *FactStore
	pits          *ClauseSet
	wumpus        *ClauseSet
}

// NewEngine creates an empty knowledge base for a width x height grid.
func NewEngine(width, height int) *Engine {
	return &Engine{
		width:  width,
		height: height,
		facts:  NewFactStore(),
		pits:   NewClauseSet(HazardPit),
		wumpus: NewClauseSet(HazardWumpus),
	}
}

// Facts exposes the fact store for read-side queries.
func (e *Engine) Facts() *FactStore {
	return e.facts
}

// PitClauses exposes the pit clause family for display.
func (e *Engine) PitClauses() *ClauseSet {
	return e.pits
}

// WumpusClauses exposes the wumpus clause family for display.
func (e *Engine) WumpusClauses() *ClauseSet {
	return e.wumpus
}

// IsSafe reports whether the cell has been positively proven safe.
func (e *Engine) IsSafe(c grid.Coord) bool {
	return e.facts.Ask(Proposition{Kind: PropSafe, Cell: c})
}

// Observe updates the knowledge base from the percepts sensed at pos, whose
// in-bounds neighbors are given in the world's enumeration order, then runs
// forward chaining to a fixed point.
//
// A positive hazard percept opens a clause over all neighbors; a negative one
// excludes the hazard from all neighbors at once, which is the strongest
// inference the percept supports.
func (e *Engine) Observe(pos grid.Coord, neighbors []grid.Coord, p grid.Percepts) error {
	e.facts.Tell(Proposition{Kind: PropVisited, Cell: pos})
	e.facts.Tell(Proposition{Kind: PropSafe, Cell: pos})
	e.facts.Tell(Proposition{Kind: PropNoPit, Cell: pos})
	e.facts.Tell(Proposition{Kind: PropNoWumpus, Cell: pos})

	if p.Breeze {
		e.facts.Tell(Proposition{Kind: PropBreeze, Cell: pos})
		e.pits.Add(neighbors)
	} else {
		e.facts.Tell(Proposition{Kind: PropNoBreeze, Cell: pos})
		for _, n := range neighbors {
			e.facts.Tell(Proposition{Kind: PropNoPit, Cell: n})
		}
	}

	if p.Stench {
		e.facts.Tell(Proposition{Kind: PropStench, Cell: pos})
		e.wumpus.Add(neighbors)
	} else {
		e.facts.Tell(Proposition{Kind: PropNoStench, Cell: pos})
		for _, n := range neighbors {
			e.facts.Tell(Proposition{Kind: PropNoWumpus, Cell: n})
		}
	}

	if p.Glitter {
		e.facts.Tell(Proposition{Kind: PropGlitter, Cell: pos})
		e.facts.Tell(Proposition{Kind: PropGold, Cell: pos})
	}

	if err := e.Propagate(); err != nil {
		return fmt.Errorf("observe %s: %w", pos, err)
	}

	logging.KernelDebug("observed %s breeze=%v stench=%v glitter=%v facts=%d",
		pos, p.Breeze, p.Stench, p.Glitter, e.facts.Len())
	return nil
}

// Propagate runs the forward-chaining fixed point: prune both clause
// families against the fact store, then close the safe predicate for every
// cell with both hazards excluded. Repeats until a full pass changes nothing.
func (e *Engine) Propagate() error {
	for pass := 0; pass < maxPropagationPasses; pass++ {
		changed := false

		if e.pits.prune(e.facts) {
			changed = true
		}
		if e.wumpus.prune(e.facts) {
			changed = true
		}

		for y := 1; y <= e.height; y++ {
			for x := 1; x <= e.width; x++ {
				c := grid.Coord{X: x, Y: y}
				if !e.facts.Ask(Proposition{Kind: PropNoPit, Cell: c}) ||
					!e.facts.Ask(Proposition{Kind: PropNoWumpus, Cell: c}) {
					continue
				}
				safe := Proposition{Kind: PropSafe, Cell: c}
				if !e.facts.Ask(safe) {
					e.facts.Tell(safe)
					changed = true
				}
			}
		}

		if !changed {
			return nil
		}
	}
	return ErrDiverged
}
