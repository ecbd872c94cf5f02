// Package agent implements the knowledge-based decision policy: an explicit
// three-state machine that turns inferred safety facts into movement and
// action commands, using breadth-first search when no safe move is adjacent.
package agent

import (
	"fmt"

	"gridnerd/internal/core"
	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
	"gridnerd/internal/search"
	"gridnerd/internal/world"
)

// State is the agent's behavioral mode.
type State int

const (
	// StateExploring seeks safe unvisited cells.
	StateExploring State = iota
	// StateReturning navigates back to the home cell to climb out.
	StateReturning
	// StateDone is terminal: the agent climbed out.
	StateDone
)

var stateNames = [...]string{"exploring", "returning", "done"}

// String returns the state name.
func (s State) String() string { return stateNames[s] }

// StatusStuck is the sentinel status reported when no safe move exists. It is
// a planning failure for the caller to display, not an error.
const StatusStuck = "stuck: no safe moves available"

// Agent is one knowledge-based agent bound to one world for one episode. It
// owns its knowledge base and visited set exclusively; nothing is shared.
type Agent struct {
	world   *world.World
	engine  *core.Engine
	visited map[grid.Coord]struct{}
	state   State
	home    grid.Coord
}

// New creates an agent for the given world, homed at the start cell.
func New(w *world.World) *Agent {
	return &Agent{
		world:   w,
		engine:  core.NewEngine(w.Width, w.Height),
		visited: make(map[grid.Coord]struct{}),
		state:   StateExploring,
		home:    world.Start,
	}
}

// Engine exposes the knowledge base for display and kernel export.
func (a *Agent) Engine() *core.Engine { return a.engine }

// State returns the current behavioral state.
func (a *Agent) State() State { return a.state }

// Home returns the cell the agent must return to before climbing out.
func (a *Agent) Home() grid.Coord { return a.home }

// Visited reports whether the agent has physically occupied the cell.
func (a *Agent) Visited(c grid.Coord) bool {
	_, ok := a.visited[c]
	return ok
}

// VisitedCount returns the number of distinct cells occupied so far.
func (a *Agent) VisitedCount() int { return len(a.visited) }

// Step executes one decision step: sense, update knowledge, then apply the
// policy rules in strict priority order and issue at most one movement or
// action command. The returned status describes the decision taken.
func (a *Agent) Step() (string, error) {
	if a.state == StateDone {
		return "episode complete", nil
	}

	pos := a.world.AgentPos()
	percepts := a.world.PerceptsAt(pos)
	neighbors := a.world.Neighbors(pos)

	if err := a.engine.Observe(pos, neighbors, percepts); err != nil {
		return "", fmt.Errorf("knowledge update at %s: %w", pos, err)
	}
	a.visited[pos] = struct{}{}

	// 1. Gold underfoot: grab it and head home.
	if percepts.Glitter {
		a.world.Grab()
		a.state = StateReturning
		logging.Agent("grabbed gold at %s", pos)
		return fmt.Sprintf("grab gold at %s", pos), nil
	}

	// 2. Home with the job done: climb out.
	if a.state == StateReturning && pos == a.home {
		a.world.Climb()
		a.state = StateDone
		logging.Agent("climbed out at %s", pos)
		return "climb out", nil
	}

	// 3. Returning: follow a path home over cells known passable.
	if a.state == StateReturning {
		return a.returnHome(pos), nil
	}

	// 4. Any adjacent cell proven safe and unvisited: take the first in the
	// world's enumeration order.
	for _, n := range neighbors {
		if a.engine.IsSafe(n) && !a.Visited(n) {
			a.moveTo(pos, n)
			return fmt.Sprintf("move to %s (safe neighbor)", n), nil
		}
	}

	// 5. No adjacent candidate: search for a path to any safe unvisited cell,
	// traversing only proven-safe cells.
	path := search.BFS(pos,
		func(c grid.Coord) bool { return a.engine.IsSafe(c) && !a.Visited(c) },
		a.world.Neighbors,
		a.engine.IsSafe,
	)
	if len(path) > 1 {
		next := path[1]
		a.moveTo(pos, next)
		return fmt.Sprintf("follow path toward %s", next), nil
	}

	// 6. Nothing safe left to explore: give up and head home.
	if a.state == StateExploring {
		a.state = StateReturning
		logging.Agent("no reachable safe unvisited cells; returning home")
		return "all reachable safe cells explored, returning home", nil
	}

	// 7. Already returning with no path: report stuck, change nothing.
	return StatusStuck, nil
}

// returnHome advances one step along the shortest path home, traversing cells
// that are visited or proven safe.
func (a *Agent) returnHome(pos grid.Coord) string {
	path := search.BFS(pos,
		func(c grid.Coord) bool { return c == a.home },
		a.world.Neighbors,
		func(c grid.Coord) bool { return a.Visited(c) || a.engine.IsSafe(c) },
	)
	if len(path) > 1 {
		next := path[1]
		a.moveTo(pos, next)
		return fmt.Sprintf("returning home via %s", next)
	}
	return StatusStuck
}

// moveTo rotates clockwise until the agent faces the adjacent target, then
// steps forward. Rotation is clockwise-only, so a 180-degree turn costs two
// turns and the worst case is three.
func (a *Agent) moveTo(pos, target grid.Coord) {
	heading, ok := grid.HeadingBetween(pos, target)
	if !ok {
		// Targets always come from the neighbor generator; anything else is
		// a programming error upstream.
		logging.Agent("moveTo: %s is not adjacent to %s", target, pos)
		return
	}
	for turns := a.world.Facing().ClockwiseTurnsTo(heading); turns > 0; turns-- {
		a.world.TurnRight()
	}
	a.world.Forward()
	logging.AgentDebug("moved %s -> %s facing %s", pos, target, heading)
}
