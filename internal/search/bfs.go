// Package search implements graph search over the abstract grid graph. The
// searches are generic: callers supply the goal test, the neighbor generator
// and the traversability predicate, so the package knows nothing about
// hazards or knowledge bases.
package search

import (
	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
)

// BFS finds the shortest path (by edge count) from start to any coordinate
// satisfying goal. Every coordinate on the path except start must satisfy
// traversable; start is taken as given. Exploration is strict level order, so
// the first goal reached is provably shortest. Returns nil when no path
// exists.
//
// If start itself satisfies goal, the one-element path is returned
// immediately without a traversability check.
func BFS(start grid.Coord,
	goal func(grid.Coord) bool,
	neighbors func(grid.Coord) []grid.Coord,
	traversable func(grid.Coord) bool,
) []grid.Coord {
	if goal(start) {
		return []grid.Coord{start}
	}

	type node struct {
		pos  grid.Coord
		path []grid.Coord
	}

	frontier := []node{{pos: start, path: []grid.Coord{start}}}
	explored := map[grid.Coord]struct{}{start: {}}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, n := range neighbors(current.pos) {
			if _, seen := explored[n]; seen {
				continue
			}
			if !traversable(n) {
				continue
			}

			path := make([]grid.Coord, len(current.path), len(current.path)+1)
			copy(path, current.path)
			path = append(path, n)

			if goal(n) {
				logging.SearchDebug("bfs %s -> %s: %d nodes", start, n, len(path))
				return path
			}

			explored[n] = struct{}{}
			frontier = append(frontier, node{pos: n, path: path})
		}
	}

	logging.SearchDebug("bfs from %s: no path", start)
	return nil
}

// DFS is a depth-bounded depth-first search kept for comparison runs; it does
// not return shortest paths and the agent never uses it.
func DFS(start grid.Coord,
	goal func(grid.Coord) bool,
	neighbors func(grid.Coord) []grid.Coord,
	traversable func(grid.Coord) bool,
	maxDepth int,
) []grid.Coord {
	type node struct {
		pos   grid.Coord
		path  []grid.Coord
		depth int
	}

	stack := []node{{pos: start, path: []grid.Coord{start}}}
	explored := map[grid.Coord]struct{}{start: {}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.depth > maxDepth {
			continue
		}
		if goal(current.pos) {
			return current.path
		}

		for _, n := range neighbors(current.pos) {
			if _, seen := explored[n]; seen {
				continue
			}
			if !traversable(n) {
				continue
			}
			explored[n] = struct{}{}

			path := make([]grid.Coord, len(current.path), len(current.path)+1)
			copy(path, current.path)
			path = append(path, n)
			stack = append(stack, node{pos: n, path: path, depth: current.depth + 1})
		}
	}
	return nil
}
