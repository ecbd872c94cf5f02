package core

import (
	"testing"

	"gridnerd/internal/grid"
)

func TestPruneRemovesExcludedLiterals(t *testing.T) {
	facts := NewFactStore()
	cs := NewClauseSet(HazardPit)
	cs.Add([]grid.Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}})

	facts.Tell(Proposition{Kind: PropNoPit, Cell: grid.Coord{X: 1, Y: 1}})
	if !cs.prune(facts) {
		t.Fatal("prune reported no change after a literal became excludable")
	}

	cands := cs.Candidates()
	if len(cands) != 1 || len(cands[0]) != 2 {
		t.Fatalf("clause candidates = %v, want one clause of two literals", cands)
	}
}

func TestSingletonClauseConfirmsHazard(t *testing.T) {
	facts := NewFactStore()
	cs := NewClauseSet(HazardWumpus)
	cs.Add([]grid.Coord{{X: 2, Y: 1}, {X: 1, Y: 2}})

	facts.Tell(Proposition{Kind: PropNoWumpus, Cell: grid.Coord{X: 2, Y: 1}})
	cs.prune(facts)

	if !facts.Ask(Proposition{Kind: PropWumpus, Cell: grid.Coord{X: 1, Y: 2}}) {
		t.Error("singleton clause did not confirm the remaining literal")
	}
	if cs.Len() != 0 {
		t.Errorf("confirmed clause not discarded, %d clauses remain", cs.Len())
	}
}

func TestEmptyClauseIsDroppedSilently(t *testing.T) {
	facts := NewFactStore()
	cs := NewClauseSet(HazardPit)
	cs.Add([]grid.Coord{{X: 2, Y: 1}, {X: 1, Y: 2}})

	// Both candidates ruled out through the negative-percept path before the
	// clause was ever pruned; it is stale and must assert nothing.
	facts.Tell(Proposition{Kind: PropNoPit, Cell: grid.Coord{X: 2, Y: 1}})
	facts.Tell(Proposition{Kind: PropNoPit, Cell: grid.Coord{X: 1, Y: 2}})
	cs.prune(facts)

	if cs.Len() != 0 {
		t.Errorf("stale clause not discarded, %d clauses remain", cs.Len())
	}
	if facts.Ask(Proposition{Kind: PropPit, Cell: grid.Coord{X: 2, Y: 1}}) ||
		facts.Ask(Proposition{Kind: PropPit, Cell: grid.Coord{X: 1, Y: 2}}) {
		t.Error("empty clause asserted a hazard")
	}
}

func TestPruneReachesFixedPointWithoutChange(t *testing.T) {
	facts := NewFactStore()
	cs := NewClauseSet(HazardPit)
	cs.Add([]grid.Coord{{X: 2, Y: 1}, {X: 1, Y: 2}})

	if cs.prune(facts) {
		t.Error("prune reported change with nothing excludable")
	}
	if cs.Len() != 1 {
		t.Errorf("untouched clause discarded, %d clauses remain", cs.Len())
	}
}

func TestCandidatesSortedRowMajor(t *testing.T) {
	cs := NewClauseSet(HazardPit)
	cs.Add([]grid.Coord{{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}})

	cands := cs.Candidates()
	want := []grid.Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}
	for i := range want {
		if cands[0][i] != want[i] {
			t.Errorf("candidate[%d] = %s, want %s", i, cands[0][i], want[i])
		}
	}
}
