package core

import (
	"testing"

	"gridnerd/internal/grid"
)

func TestTellIsIdempotent(t *testing.T) {
	s := NewFactStore()
	p := Proposition{Kind: PropSafe, Cell: grid.Coord{X: 1, Y: 1}}

	s.Tell(p)
	s.Tell(p)
	s.Tell(p)

	if s.Len() != 1 {
		t.Fatalf("store has %d facts after re-telling one proposition, want 1", s.Len())
	}
	if !s.Ask(p) {
		t.Fatal("Ask returned false for a told proposition")
	}
}

func TestAskAbsentMeansUnknown(t *testing.T) {
	s := NewFactStore()
	c := grid.Coord{X: 2, Y: 2}

	if s.Ask(Proposition{Kind: PropPit, Cell: c}) {
		t.Error("Ask returned true on an empty store")
	}

	// Telling no_pit must not make pit queryable, and vice versa: the kinds
	// are independent propositions, not negations of each other.
	s.Tell(Proposition{Kind: PropNoPit, Cell: c})
	if s.Ask(Proposition{Kind: PropPit, Cell: c}) {
		t.Error("no_pit assertion leaked into pit")
	}
}

func TestCellsWithIsSortedRowMajor(t *testing.T) {
	s := NewFactStore()
	cells := []grid.Coord{
		{X: 3, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 4, Y: 1},
	}
	for _, c := range cells {
		s.Tell(Proposition{Kind: PropSafe, Cell: c})
	}
	s.Tell(Proposition{Kind: PropVisited, Cell: grid.Coord{X: 1, Y: 1}})

	got := s.CellsWith(PropSafe)
	want := []grid.Coord{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("CellsWith returned %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CellsWith[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAllIsDeterministic(t *testing.T) {
	build := func() *FactStore {
		s := NewFactStore()
		s.Tell(Proposition{Kind: PropSafe, Cell: grid.Coord{X: 2, Y: 1}})
		s.Tell(Proposition{Kind: PropVisited, Cell: grid.Coord{X: 1, Y: 1}})
		s.Tell(Proposition{Kind: PropSafe, Cell: grid.Coord{X: 1, Y: 2}})
		s.Tell(Proposition{Kind: PropNoPit, Cell: grid.Coord{X: 2, Y: 1}})
		return s
	}

	a, b := build().All(), build().All()
	if len(a) != len(b) {
		t.Fatalf("All lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("All()[%d] differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestPropositionString(t *testing.T) {
	p := Proposition{Kind: PropNoWumpus, Cell: grid.Coord{X: 3, Y: 4}}
	if got := p.String(); got != "no_wumpus(3, 4)" {
		t.Errorf("Proposition.String() = %q", got)
	}
}
