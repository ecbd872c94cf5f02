package core

import "gridnerd/internal/grid"

// HazardKind identifies one of the two independent hazard clause families.
type HazardKind int

const (
	HazardPit HazardKind = iota
	HazardWumpus
)

// String returns the hazard name.
func (h HazardKind) String() string {
	if h == HazardPit {
		return "pit"
	}
	return "wumpus"
}

// confirmKind is the proposition asserted when a clause degenerates to a
// single candidate.
func (h HazardKind) confirmKind() PropKind {
	if h == HazardPit {
		return PropPit
	}
	return PropWumpus
}

// excludeKind is the proposition that eliminates a candidate from a clause.
func (h HazardKind) excludeKind() PropKind {
	if h == HazardPit {
		return PropNoPit
	}
	return PropNoWumpus
}

// clause is the set of not-yet-eliminated candidate hazard cells tied to one
// positive percept observation. Its literal set only ever shrinks.
type clause map[grid.Coord]struct{}

// ClauseSet holds the disjunctive constraints of one hazard family.
type ClauseSet struct {
	hazard  HazardKind
	clauses []clause
}

// NewClauseSet returns an empty clause set for the given hazard family.
func NewClauseSet(hazard HazardKind) *ClauseSet {
	return &ClauseSet{hazard: hazard}
}

// Add registers a new clause: "at least one of candidates contains the
// hazard". Candidates already proven hazard-free are handled by the next
// propagation pass, not here.
func (cs *ClauseSet) Add(candidates []grid.Coord) {
	c := make(clause, len(candidates))
	for _, cand := range candidates {
		c[cand] = struct{}{}
	}
	cs.clauses = append(cs.clauses, c)
}

// Len returns the number of live clauses.
func (cs *ClauseSet) Len() int {
	return len(cs.clauses)
}

// Candidates returns the literal sets of all live clauses in registration
// order, for display. Each inner slice is row-major sorted.
func (cs *ClauseSet) Candidates() [][]grid.Coord {
	out := make([][]grid.Coord, 0, len(cs.clauses))
	for _, c := range cs.clauses {
		cells := make([]grid.Coord, 0, len(c))
		for cand := range c {
			cells = append(cells, cand)
		}
		sortCoords(cells)
		out = append(out, cells)
	}
	return out
}

// prune runs one propagation pass over the family:
//   - literals proven hazard-free are removed;
//   - a singleton clause asserts its remaining literal as a confirmed hazard
//     and is discarded;
//   - an empty clause is stale (all candidates were ruled out through the
//     negative-percept path) and is dropped without asserting anything.
//
// It reports whether anything changed.
func (cs *ClauseSet) prune(facts *FactStore) bool {
	changed := false
	live := cs.clauses[:0]

	for _, c := range cs.clauses {
		for cand := range c {
			if facts.Ask(Proposition{Kind: cs.hazard.excludeKind(), Cell: cand}) {
				delete(c, cand)
				changed = true
			}
		}

		switch len(c) {
		case 0:
			// Vacuously satisfied; drop.
		case 1:
			for cand := range c {
				confirmed := Proposition{Kind: cs.hazard.confirmKind(), Cell: cand}
				if !facts.Ask(confirmed) {
					facts.Tell(confirmed)
					changed = true
				}
			}
		default:
			live = append(live, c)
		}
	}

	cs.clauses = live
	return changed
}
