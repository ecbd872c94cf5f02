// Package core implements the knowledge base of the gridNERD agent: a typed
// propositional fact store, disjunctive hazard clause sets, a forward-chaining
// inference engine, and a Mangle mirror kernel for diagnostic Datalog queries.
//
// The typed fact store is the single decision authority. The Mangle kernel
// only mirrors it so that knowledge can be inspected and extended with
// user-supplied rules; its derivations never feed back into the policy.
package core

import (
	"fmt"
	"sort"

	"gridnerd/internal/grid"
)

// PropKind enumerates the proposition predicates the agent can know.
// Propositions are tagged structs, not strings: coordinates never have to be
// parsed back out of a fact.
type PropKind int

const (
	PropVisited PropKind = iota
	PropSafe
	PropPit
	PropWumpus
	PropNoPit
	PropNoWumpus
	PropBreeze
	PropNoBreeze
	PropStench
	PropNoStench
	PropGlitter
	PropGold
)

var propKindNames = [...]string{
	PropVisited:  "visited",
	PropSafe:     "safe",
	PropPit:      "pit",
	PropWumpus:   "wumpus",
	PropNoPit:    "no_pit",
	PropNoWumpus: "no_wumpus",
	PropBreeze:   "breeze",
	PropNoBreeze: "no_breeze",
	PropStench:   "stench",
	PropNoStench: "no_stench",
	PropGlitter:  "glitter",
	PropGold:     "gold",
}

// String returns the predicate name of the kind.
func (k PropKind) String() string {
	if int(k) < 0 || int(k) >= len(propKindNames) {
		return fmt.Sprintf("PropKind(%d)", int(k))
	}
	return propKindNames[k]
}

// Proposition is a boolean fact about one cell, compared structurally.
type Proposition struct {
	Kind PropKind
	Cell grid.Coord
}

// String renders the proposition as a Datalog-style atom.
func (p Proposition) String() string {
	return fmt.Sprintf("%s(%d, %d)", p.Kind, p.Cell.X, p.Cell.Y)
}

// FactStore is the monotonic true-set of propositions. Facts are only ever
// added, never retracted; absence means "unknown", not "false".
type FactStore struct {
	facts map[Proposition]struct{}
}

// NewFactStore returns an empty fact store.
func NewFactStore() *FactStore {
	return &FactStore{facts: make(map[Proposition]struct{})}
}

// Tell adds a proposition to the true-set. Re-adding is a no-op.
func (s *FactStore) Tell(p Proposition) {
	s.facts[p] = struct{}{}
}

// Ask reports whether the proposition has been asserted true. A false result
// means unknown; callers must not read it as proven-false.
func (s *FactStore) Ask(p Proposition) bool {
	_, ok := s.facts[p]
	return ok
}

// Len returns the number of asserted facts.
func (s *FactStore) Len() int {
	return len(s.facts)
}

// CellsWith returns every cell for which a fact of the given kind is
// asserted, in deterministic row-major order.
func (s *FactStore) CellsWith(kind PropKind) []grid.Coord {
	var cells []grid.Coord
	for p := range s.facts {
		if p.Kind == kind {
			cells = append(cells, p.Cell)
		}
	}
	sortCoords(cells)
	return cells
}

// All returns every asserted proposition in deterministic order, for
// snapshotting into the Mangle kernel and for display.
func (s *FactStore) All() []Proposition {
	props := make([]Proposition, 0, len(s.facts))
	for p := range s.facts {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool {
		if props[i].Kind != props[j].Kind {
			return props[i].Kind < props[j].Kind
		}
		if props[i].Cell.Y != props[j].Cell.Y {
			return props[i].Cell.Y < props[j].Cell.Y
		}
		return props[i].Cell.X < props[j].Cell.X
	})
	return props
}

func sortCoords(cells []grid.Coord) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}
