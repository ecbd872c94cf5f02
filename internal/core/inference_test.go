package core

import (
	"testing"

	"gridnerd/internal/grid"
)

// benchmarkNeighbors reproduces the simulator's +x, -x, +y, -y enumeration
// for a 4x4 grid without importing the world package.
func benchmarkNeighbors(c grid.Coord) []grid.Coord {
	candidates := [4]grid.Coord{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
	out := make([]grid.Coord, 0, 4)
	for _, cand := range candidates {
		if cand.X >= 1 && cand.X <= 4 && cand.Y >= 1 && cand.Y <= 4 {
			out = append(out, cand)
		}
	}
	return out
}

func TestFirstObservationProvesNeighborsSafe(t *testing.T) {
	// Start cell of the classic 4x4 layout: no breeze, no stench.
	e := NewEngine(4, 4)
	start := grid.Coord{X: 1, Y: 1}

	if err := e.Observe(start, benchmarkNeighbors(start), grid.Percepts{}); err != nil {
		t.Fatalf("Observe() error = %v", err)
	}

	for _, c := range []grid.Coord{start, {X: 2, Y: 1}, {X: 1, Y: 2}} {
		if !e.IsSafe(c) {
			t.Errorf("cell %s not proven safe after quiet observation", c)
		}
	}
	if e.IsSafe(grid.Coord{X: 2, Y: 2}) {
		t.Error("diagonal cell (2,2) proven safe without evidence")
	}
}

func TestBreezeOpensClauseInsteadOfAsserting(t *testing.T) {
	e := NewEngine(4, 4)
	pos := grid.Coord{X: 2, Y: 1}

	if err := e.Observe(pos, benchmarkNeighbors(pos), grid.Percepts{Breeze: true}); err != nil {
		t.Fatalf("Observe() error = %v", err)
	}

	if e.PitClauses().Len() != 1 {
		t.Fatalf("pit clauses = %d, want 1", e.PitClauses().Len())
	}
	for _, n := range benchmarkNeighbors(pos) {
		if e.Facts().Ask(Proposition{Kind: PropPit, Cell: n}) {
			t.Errorf("breeze asserted pit(%s) outright", n)
		}
	}
}

func TestClauseNarrowsToConfirmedPit(t *testing.T) {
	e := NewEngine(4, 4)

	// Quiet start, then a breeze at (2,1). Candidates: (3,1), (1,1), (2,2).
	start := grid.Coord{X: 1, Y: 1}
	if err := e.Observe(start, benchmarkNeighbors(start), grid.Percepts{}); err != nil {
		t.Fatalf("Observe(start) error = %v", err)
	}
	breezy := grid.Coord{X: 2, Y: 1}
	if err := e.Observe(breezy, benchmarkNeighbors(breezy), grid.Percepts{Breeze: true}); err != nil {
		t.Fatalf("Observe(breezy) error = %v", err)
	}

	// Visiting (2,2) quietly excludes it, leaving (3,1) as the only
	// candidate: the clause must collapse to a confirmed pit.
	inner := grid.Coord{X: 2, Y: 2}
	if err := e.Observe(inner, benchmarkNeighbors(inner), grid.Percepts{}); err != nil {
		t.Fatalf("Observe(inner) error = %v", err)
	}

	pit := grid.Coord{X: 3, Y: 1}
	if !e.Facts().Ask(Proposition{Kind: PropPit, Cell: pit}) {
		t.Errorf("pit(%s) not confirmed after clause narrowed to a singleton", pit)
	}
	if e.IsSafe(pit) {
		t.Errorf("confirmed pit cell %s marked safe", pit)
	}
	if e.PitClauses().Len() != 0 {
		t.Errorf("collapsed clause not discarded, %d remain", e.PitClauses().Len())
	}
}

func TestSafeRequiresBothExclusions(t *testing.T) {
	e := NewEngine(4, 4)
	c := grid.Coord{X: 3, Y: 3}

	e.Facts().Tell(Proposition{Kind: PropNoPit, Cell: c})
	if err := e.Propagate(); err != nil {
		t.Fatalf("Propagate() error = %v", err)
	}
	if e.IsSafe(c) {
		t.Fatal("cell proven safe with only no_pit")
	}

	e.Facts().Tell(Proposition{Kind: PropNoWumpus, Cell: c})
	if err := e.Propagate(); err != nil {
		t.Fatalf("Propagate() error = %v", err)
	}
	if !e.IsSafe(c) {
		t.Fatal("cell not proven safe with both hazards excluded")
	}
}

func TestObservationsAreMonotonic(t *testing.T) {
	e := NewEngine(4, 4)

	observations := []struct {
		pos grid.Coord
		p   grid.Percepts
	}{
		{grid.Coord{X: 1, Y: 1}, grid.Percepts{}},
		{grid.Coord{X: 2, Y: 1}, grid.Percepts{Breeze: true}},
		{grid.Coord{X: 1, Y: 2}, grid.Percepts{Stench: true}},
		{grid.Coord{X: 2, Y: 2}, grid.Percepts{}},
	}

	prev := 0
	for _, obs := range observations {
		if err := e.Observe(obs.pos, benchmarkNeighbors(obs.pos), obs.p); err != nil {
			t.Fatalf("Observe(%s) error = %v", obs.pos, err)
		}
		if e.Facts().Len() < prev {
			t.Fatalf("fact count shrank from %d to %d at %s", prev, e.Facts().Len(), obs.pos)
		}
		prev = e.Facts().Len()
	}
}

func TestBenchmarkTraceFindsWumpus(t *testing.T) {
	// The classic layout's first three quiet-then-stench observations pin the
	// wumpus: stench at (1,2) with (1,1) and (2,2) already excluded leaves
	// only (1,3).
	e := NewEngine(4, 4)

	steps := []struct {
		pos grid.Coord
		p   grid.Percepts
	}{
		{grid.Coord{X: 1, Y: 1}, grid.Percepts{}},
		{grid.Coord{X: 2, Y: 1}, grid.Percepts{Breeze: true}},
		{grid.Coord{X: 1, Y: 2}, grid.Percepts{Stench: true}},
	}
	for _, s := range steps {
		if err := e.Observe(s.pos, benchmarkNeighbors(s.pos), s.p); err != nil {
			t.Fatalf("Observe(%s) error = %v", s.pos, err)
		}
	}

	wumpus := grid.Coord{X: 1, Y: 3}
	if !e.Facts().Ask(Proposition{Kind: PropWumpus, Cell: wumpus}) {
		t.Errorf("wumpus(%s) not inferred from the stench at (1,2)", wumpus)
	}
	if !e.IsSafe(grid.Coord{X: 2, Y: 2}) {
		t.Error("(2,2) not proven safe although both hazards are excluded there")
	}
}

func TestGlitterRecordsGold(t *testing.T) {
	e := NewEngine(4, 4)
	pos := grid.Coord{X: 2, Y: 3}

	err := e.Observe(pos, benchmarkNeighbors(pos),
		grid.Percepts{Breeze: true, Stench: true, Glitter: true})
	if err != nil {
		t.Fatalf("Observe() error = %v", err)
	}

	if !e.Facts().Ask(Proposition{Kind: PropGold, Cell: pos}) {
		t.Error("glitter did not record gold at the cell")
	}
	if !e.Facts().Ask(Proposition{Kind: PropGlitter, Cell: pos}) {
		t.Error("glitter percept not recorded")
	}
}
