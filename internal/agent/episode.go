package agent

import (
	"github.com/google/uuid"

	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
	"gridnerd/internal/world"
)

// DefaultMaxSteps bounds an episode. A 4x4 world needs far fewer; bigger
// generated worlds scale with area, and the runner sizes the bound itself
// when given zero.
const DefaultMaxSteps = 200

// StepRecord captures one decision step for replay and persistence.
type StepRecord struct {
	Step     int
	Pos      grid.Coord
	Heading  grid.Heading
	Percepts grid.Percepts
	Status   string
	Facts    int
}

// Result summarizes one finished episode.
type Result struct {
	ID       string
	Width    int
	Height   int
	Seed     int64
	Steps    []StepRecord
	Escaped  bool
	Alive    bool
	GoldHeld bool
	Stuck    bool
}

// Run plays one full episode: step the agent until it climbs out, dies, gets
// stuck, or the step bound is hit. maxSteps <= 0 selects a bound scaled to
// the grid area.
func Run(w *world.World, maxSteps int) (*Result, error) {
	if maxSteps <= 0 {
		maxSteps = w.Width * w.Height * 15
		if maxSteps < DefaultMaxSteps {
			maxSteps = DefaultMaxSteps
		}
	}

	a := New(w)
	result := &Result{
		ID:     uuid.NewString(),
		Width:  w.Width,
		Height: w.Height,
	}

	for step := 1; step <= maxSteps; step++ {
		pos := w.AgentPos()
		percepts := w.PerceptsAt(pos)

		status, err := a.Step()
		if err != nil {
			return result, err
		}

		result.Steps = append(result.Steps, StepRecord{
			Step:     step,
			Pos:      pos,
			Heading:  w.Facing(),
			Percepts: percepts,
			Status:   status,
			Facts:    a.Engine().Facts().Len(),
		})

		if status == StatusStuck {
			result.Stuck = true
			break
		}
		if !w.Alive() || w.Escaped() {
			break
		}
	}

	result.Escaped = w.Escaped()
	result.Alive = w.Alive()
	result.GoldHeld = w.HasGold()
	logging.Agent("episode %s finished: escaped=%v alive=%v gold=%v steps=%d",
		result.ID, result.Escaped, result.Alive, result.GoldHeld, len(result.Steps))
	return result, nil
}
