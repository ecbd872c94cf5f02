package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gridnerd/internal/grid"
)

// gridNeighbors returns the +x, -x, +y, -y neighbors of c on a w x h board.
func gridNeighbors(w, h int) func(grid.Coord) []grid.Coord {
	return func(c grid.Coord) []grid.Coord {
		candidates := [4]grid.Coord{
			{X: c.X + 1, Y: c.Y},
			{X: c.X - 1, Y: c.Y},
			{X: c.X, Y: c.Y + 1},
			{X: c.X, Y: c.Y - 1},
		}
		out := make([]grid.Coord, 0, 4)
		for _, cand := range candidates {
			if cand.X >= 1 && cand.X <= w && cand.Y >= 1 && cand.Y <= h {
				out = append(out, cand)
			}
		}
		return out
	}
}

func allTraversable(grid.Coord) bool { return true }

func TestBFSFindsShortestPath(t *testing.T) {
	start := grid.Coord{X: 1, Y: 1}
	target := grid.Coord{X: 3, Y: 3}

	path := BFS(start,
		func(c grid.Coord) bool { return c == target },
		gridNeighbors(3, 3),
		allTraversable,
	)

	if path == nil {
		t.Fatal("BFS found no path on an open grid")
	}
	// Manhattan distance 4, so 5 coordinates including both endpoints.
	if len(path) != 5 {
		t.Fatalf("path length = %d, want 5: %v", len(path), path)
	}
	if path[0] != start || path[len(path)-1] != target {
		t.Fatalf("path endpoints wrong: %v", path)
	}
	for i := 1; i < len(path); i++ {
		if _, ok := grid.HeadingBetween(path[i-1], path[i]); !ok {
			t.Fatalf("path step %d is not a unit move: %s -> %s", i, path[i-1], path[i])
		}
	}
}

func TestBFSPrefersFirstNeighborOnTies(t *testing.T) {
	// From (2,2) on a 3x3 grid the +x neighbor is enumerated first, so a
	// goal one step away in every direction resolves to (3,2).
	start := grid.Coord{X: 2, Y: 2}
	path := BFS(start,
		func(c grid.Coord) bool { return c != start },
		gridNeighbors(3, 3),
		allTraversable,
	)

	want := []grid.Coord{{X: 2, Y: 2}, {X: 3, Y: 2}}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestBFSStartSatisfiesGoal(t *testing.T) {
	start := grid.Coord{X: 2, Y: 2}
	path := BFS(start,
		func(c grid.Coord) bool { return c == start },
		gridNeighbors(3, 3),
		func(grid.Coord) bool { return false }, // start is never checked
	)

	want := []grid.Coord{start}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestBFSRoutesAroundBlockedCells(t *testing.T) {
	// Wall across the middle column except the top cell.
	blocked := map[grid.Coord]struct{}{
		{X: 2, Y: 1}: {},
		{X: 2, Y: 2}: {},
	}
	path := BFS(grid.Coord{X: 1, Y: 1},
		func(c grid.Coord) bool { return c == (grid.Coord{X: 3, Y: 1}) },
		gridNeighbors(3, 3),
		func(c grid.Coord) bool { _, b := blocked[c]; return !b },
	)

	want := []grid.Coord{
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3},
		{X: 2, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1},
	}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestBFSReturnsNilWhenNoPath(t *testing.T) {
	// Full wall across the middle column.
	blocked := map[grid.Coord]struct{}{
		{X: 2, Y: 1}: {},
		{X: 2, Y: 2}: {},
		{X: 2, Y: 3}: {},
	}
	path := BFS(grid.Coord{X: 1, Y: 1},
		func(c grid.Coord) bool { return c.X == 3 },
		gridNeighbors(3, 3),
		func(c grid.Coord) bool { _, b := blocked[c]; return !b },
	)
	if path != nil {
		t.Fatalf("BFS crossed a full wall: %v", path)
	}
}

func TestDFSRespectsDepthBound(t *testing.T) {
	start := grid.Coord{X: 1, Y: 1}
	goal := func(c grid.Coord) bool { return c == (grid.Coord{X: 3, Y: 3}) }

	if path := DFS(start, goal, gridNeighbors(3, 3), allTraversable, 2); path != nil {
		t.Fatalf("DFS found a path beyond its depth bound: %v", path)
	}

	path := DFS(start, goal, gridNeighbors(3, 3), allTraversable, 8)
	if path == nil {
		t.Fatal("DFS found no path within a generous bound")
	}
	if path[0] != start || !goal(path[len(path)-1]) {
		t.Fatalf("DFS path endpoints wrong: %v", path)
	}
}
