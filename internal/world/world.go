// Package world implements the Wumpus World grid simulator: hazard placement,
// percept generation and movement mechanics. The reasoning packages consume
// it only through percepts, the neighbor generator and the four action
// commands; they never read hazard locations.
package world

import (
	"fmt"
	"math/rand"

	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
)

// Start is the cave entrance. The agent begins here facing East and must
// return here to climb out.
var Start = grid.Coord{X: 1, Y: 1}

// World is one grid environment plus the agent's physical state within it.
type World struct {
	Width, Height int

	pits   map[grid.Coord]struct{}
	wumpus grid.Coord
	gold   grid.Coord

	agentPos grid.Coord
	facing   grid.Heading
	alive    bool
	hasGold  bool
	escaped  bool
}

// NewBenchmark returns the 4x4 Russell & Norvig layout: pits at (3,1), (3,3)
// and (4,4), wumpus at (1,3), gold at (2,3).
func NewBenchmark() *World {
	return New(4, 4,
		[]grid.Coord{{X: 3, Y: 1}, {X: 3, Y: 3}, {X: 4, Y: 4}},
		grid.Coord{X: 1, Y: 3},
		grid.Coord{X: 2, Y: 3})
}

// New builds a world with explicit hazard and gold placement.
func New(width, height int, pits []grid.Coord, wumpus, gold grid.Coord) *World {
	w := &World{
		Width:    width,
		Height:   height,
		pits:     make(map[grid.Coord]struct{}, len(pits)),
		wumpus:   wumpus,
		gold:     gold,
		agentPos: Start,
		facing:   grid.East,
		alive:    true,
	}
	for _, p := range pits {
		w.pits[p] = struct{}{}
	}
	return w
}

// Generate builds a seeded random world. Hazards and gold never land on the
// start cell, and at most one pit per cell. pitDensity is the probability of
// a pit in each non-start cell; values outside (0,1) fall back to 0.2.
func Generate(width, height int, seed int64, pitDensity float64) *World {
	if pitDensity <= 0 || pitDensity >= 1 {
		pitDensity = 0.2
	}
	rng := rand.New(rand.NewSource(seed))

	var pits []grid.Coord
	free := make([]grid.Coord, 0, width*height-1)
	for y := 1; y <= height; y++ {
		for x := 1; x <= width; x++ {
			c := grid.Coord{X: x, Y: y}
			if c == Start {
				continue
			}
			free = append(free, c)
			if rng.Float64() < pitDensity {
				pits = append(pits, c)
			}
		}
	}

	wumpus := free[rng.Intn(len(free))]
	gold := free[rng.Intn(len(free))]

	logging.WorldDebug("generated %dx%d world seed=%d pits=%d wumpus=%s gold=%s",
		width, height, seed, len(pits), wumpus, gold)
	return New(width, height, pits, wumpus, gold)
}

// InBounds reports whether the coordinate lies on the grid.
func (w *World) InBounds(c grid.Coord) bool {
	return c.X >= 1 && c.X <= w.Width && c.Y >= 1 && c.Y <= w.Height
}

// Neighbors returns the in-bounds adjacent coordinates in the fixed
// enumeration order +x, -x, +y, -y. Every consumer that needs a tie-break
// (notably "first safe unvisited neighbor") inherits this order.
func (w *World) Neighbors(c grid.Coord) []grid.Coord {
	candidates := [4]grid.Coord{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
	out := make([]grid.Coord, 0, 4)
	for _, cand := range candidates {
		if w.InBounds(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// PerceptsAt generates the percepts for a coordinate: breeze if a pit is
// adjacent, stench if the wumpus is adjacent, glitter if the gold lies here
// and has not been grabbed.
func (w *World) PerceptsAt(c grid.Coord) grid.Percepts {
	var p grid.Percepts
	for _, n := range w.Neighbors(c) {
		if _, ok := w.pits[n]; ok {
			p.Breeze = true
		}
		if n == w.wumpus {
			p.Stench = true
		}
	}
	p.Glitter = c == w.gold && !w.hasGold
	return p
}

// Forward moves the agent one step in its current heading. Walking off the
// grid is a no-op; walking into a pit or the wumpus kills the agent. The
// simulator owns this check — the agent trusts its own safety proofs and
// never re-verifies.
func (w *World) Forward() {
	off := w.facing.Offset()
	next := grid.Coord{X: w.agentPos.X + off.X, Y: w.agentPos.Y + off.Y}
	if !w.InBounds(next) {
		return
	}
	w.agentPos = next
	if _, pit := w.pits[next]; pit || next == w.wumpus {
		w.alive = false
		logging.World("agent died at %s", next)
	}
}

// TurnRight rotates the agent 90 degrees clockwise.
func (w *World) TurnRight() {
	w.facing = w.facing.Clockwise()
}

// TurnLeft rotates the agent 90 degrees counter-clockwise.
func (w *World) TurnLeft() {
	w.facing = w.facing.CounterClockwise()
}

// Grab picks up the gold if the agent stands on it.
func (w *World) Grab() {
	if w.agentPos == w.gold && !w.hasGold {
		w.hasGold = true
		logging.World("gold grabbed at %s", w.agentPos)
	}
}

// Climb exits the cave if the agent is at the start cell.
func (w *World) Climb() {
	if w.agentPos == Start {
		w.escaped = true
		logging.World("agent climbed out")
	}
}

// AgentPos returns the agent's current cell.
func (w *World) AgentPos() grid.Coord { return w.agentPos }

// Facing returns the agent's current heading.
func (w *World) Facing() grid.Heading { return w.facing }

// Alive reports whether the agent is alive.
func (w *World) Alive() bool { return w.alive }

// HasGold reports whether the agent holds the gold.
func (w *World) HasGold() bool { return w.hasGold }

// Escaped reports whether the agent has climbed out.
func (w *World) Escaped() bool { return w.escaped }

// HazardsRevealed returns the true hazard and gold placement, for post-mortem
// display only. Reasoning code must not call it.
func (w *World) HazardsRevealed() (pits []grid.Coord, wumpus, gold grid.Coord) {
	for p := range w.pits {
		pits = append(pits, p)
	}
	return pits, w.wumpus, w.gold
}

// State summarizes the world for status lines.
func (w *World) State() string {
	return fmt.Sprintf("pos=%s facing=%s alive=%v gold=%v escaped=%v",
		w.agentPos, w.facing, w.alive, w.hasGold, w.escaped)
}
