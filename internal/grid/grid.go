// Package grid holds the value types shared by the world simulator, the
// knowledge core and the decision policy: coordinates, compass headings and
// percept bundles. Keeping them here avoids import cycles between the
// simulator and the reasoning packages.
package grid

import "fmt"

// Coord is a 1-indexed grid coordinate. Coords are value types compared by
// equality; no component owns them.
type Coord struct {
	X, Y int
}

// String returns the conventional "(x,y)" rendering.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Heading is a 4-direction compass heading. The index order matches the
// world's axis convention: East, North, West, South.
type Heading int

const (
	East Heading = iota
	North
	West
	South
)

var headingNames = [...]string{"East", "North", "West", "South"}

// headingOffsets maps a heading to its unit movement vector.
var headingOffsets = [...]Coord{
	East:  {X: 1, Y: 0},
	North: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
	South: {X: 0, Y: -1},
}

// String returns the compass name of the heading.
func (h Heading) String() string {
	if h < East || h > South {
		return fmt.Sprintf("Heading(%d)", int(h))
	}
	return headingNames[h]
}

// Offset returns the unit movement vector for the heading.
func (h Heading) Offset() Coord {
	return headingOffsets[h]
}

// Clockwise returns the heading after one 90-degree clockwise rotation
// (East -> South -> West -> North -> East).
func (h Heading) Clockwise() Heading {
	return (h + 3) % 4
}

// CounterClockwise returns the heading after one 90-degree counter-clockwise
// rotation.
func (h Heading) CounterClockwise() Heading {
	return (h + 1) % 4
}

// ClockwiseTurnsTo returns the number of clockwise rotations needed to face
// target. Rotation is clockwise-only, so a 180-degree turn costs 2 and the
// worst case is 3.
func (h Heading) ClockwiseTurnsTo(target Heading) int {
	return int((h - target + 4) % 4)
}

// HeadingBetween returns the heading that points from one coordinate to an
// adjacent coordinate, and false if the two are not 4-adjacent.
func HeadingBetween(from, to Coord) (Heading, bool) {
	d := Coord{X: to.X - from.X, Y: to.Y - from.Y}
	for h, off := range headingOffsets {
		if d == off {
			return Heading(h), true
		}
	}
	return East, false
}

// Percepts is the sensory bundle available at the agent's current cell.
type Percepts struct {
	Breeze  bool // a pit is in some adjacent cell
	Stench  bool // the wumpus is in some adjacent cell
	Glitter bool // the gold is in this cell
}
