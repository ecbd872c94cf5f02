package grid

import "testing"

func TestHeadingClockwiseCycle(t *testing.T) {
	// East -> South -> West -> North -> East
	h := East
	want := []Heading{South, West, North, East}
	for i, w := range want {
		h = h.Clockwise()
		if h != w {
			t.Fatalf("rotation %d: got %s, want %s", i+1, h, w)
		}
	}
}

func TestHeadingCounterClockwiseInverts(t *testing.T) {
	for h := East; h <= South; h++ {
		if got := h.Clockwise().CounterClockwise(); got != h {
			t.Errorf("%s: clockwise then counter-clockwise gives %s", h, got)
		}
	}
}

func TestClockwiseTurnsTo(t *testing.T) {
	tests := []struct {
		from, to Heading
		want     int
	}{
		{East, East, 0},
		{East, South, 1},
		{East, West, 2},
		{East, North, 3},
		{North, East, 1},
		{South, North, 2},
		{West, South, 1},
	}
	for _, tt := range tests {
		if got := tt.from.ClockwiseTurnsTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %d turns, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestClockwiseTurnsToNeverExceedsThree(t *testing.T) {
	for from := East; from <= South; from++ {
		for to := East; to <= South; to++ {
			turns := from.ClockwiseTurnsTo(to)
			if turns < 0 || turns > 3 {
				t.Errorf("%s -> %s: %d turns out of range", from, to, turns)
			}
			h := from
			for i := 0; i < turns; i++ {
				h = h.Clockwise()
			}
			if h != to {
				t.Errorf("%s -> %s: %d clockwise turns end at %s", from, to, turns, h)
			}
		}
	}
}

func TestHeadingBetween(t *testing.T) {
	from := Coord{X: 2, Y: 2}
	tests := []struct {
		to   Coord
		want Heading
	}{
		{Coord{X: 3, Y: 2}, East},
		{Coord{X: 2, Y: 3}, North},
		{Coord{X: 1, Y: 2}, West},
		{Coord{X: 2, Y: 1}, South},
	}
	for _, tt := range tests {
		got, ok := HeadingBetween(from, tt.to)
		if !ok || got != tt.want {
			t.Errorf("HeadingBetween(%s, %s) = %s, %v; want %s, true", from, tt.to, got, ok, tt.want)
		}
	}

	if _, ok := HeadingBetween(from, Coord{X: 4, Y: 2}); ok {
		t.Error("HeadingBetween accepted a non-adjacent coordinate")
	}
	if _, ok := HeadingBetween(from, from); ok {
		t.Error("HeadingBetween accepted identical coordinates")
	}
	if _, ok := HeadingBetween(from, Coord{X: 3, Y: 3}); ok {
		t.Error("HeadingBetween accepted a diagonal coordinate")
	}
}

func TestOffsetMatchesHeading(t *testing.T) {
	if (East.Offset() != Coord{X: 1, Y: 0}) {
		t.Errorf("East offset = %s", East.Offset())
	}
	if (South.Offset() != Coord{X: 0, Y: -1}) {
		t.Errorf("South offset = %s", South.Offset())
	}
}

func TestCoordString(t *testing.T) {
	if got := (Coord{X: 3, Y: 1}).String(); got != "(3,1)" {
		t.Errorf("Coord.String() = %q", got)
	}
}
