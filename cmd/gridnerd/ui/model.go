package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gridnerd/internal/agent"
	"gridnerd/internal/config"
	"gridnerd/internal/core"
	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
	"gridnerd/internal/world"
)

// autoplayInterval paces automatic stepping.
const autoplayInterval = 400 * time.Millisecond

// tickMsg drives autoplay.
type tickMsg time.Time

// Model is the bubbletea model for the interactive episode viewer.
type Model struct {
	cfg config.Config

	world  *world.World
	agent  *agent.Agent
	kernel *core.Kernel

	// Diagnostic overlays derived by the Mangle kernel.
	frontier map[grid.Coord]struct{}
	risky    map[grid.Coord]struct{}

	step     int
	status   string
	err      error
	autoplay bool
	finished bool
	width    int
	height   int

	spinner spinner.Model
}

// NewModel builds a fresh episode viewer from the configuration.
func NewModel(cfg config.Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusStyle

	m := Model{
		cfg:     cfg,
		kernel:  core.NewKernel(),
		status:  "press space to step, a to autoplay",
		spinner: sp,
	}
	m.resetEpisode()
	return m
}

// resetEpisode builds a new world and agent.
func (m *Model) resetEpisode() {
	if m.cfg.World.Benchmark && m.cfg.World.Width == 4 && m.cfg.World.Height == 4 {
		m.world = world.NewBenchmark()
	} else {
		m.world = world.Generate(m.cfg.World.Width, m.cfg.World.Height,
			m.cfg.World.Seed, m.cfg.World.PitDensity)
	}
	m.agent = agent.New(m.world)
	m.frontier = nil
	m.risky = nil
	m.step = 0
	m.finished = false
	m.err = nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.advance()
			return m, nil
		case "a":
			m.autoplay = !m.autoplay
			if m.autoplay && !m.finished {
				return m, tea.Batch(tick(), m.spinner.Tick)
			}
			return m, nil
		case "r":
			m.resetEpisode()
			m.status = "episode reset"
			m.autoplay = false
			return m, nil
		}

	case tickMsg:
		if !m.autoplay || m.finished {
			return m, nil
		}
		m.advance()
		if m.autoplay && !m.finished {
			return m, tick()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.autoplay || m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(autoplayInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// advance plays one agent step and refreshes the kernel overlays.
func (m *Model) advance() {
	if m.finished {
		return
	}

	status, err := m.agent.Step()
	m.step++
	if err != nil {
		m.err = err
		m.finished = true
		return
	}
	m.status = status

	switch {
	case !m.world.Alive():
		m.finished = true
		m.autoplay = false
	case m.world.Escaped():
		m.finished = true
		m.autoplay = false
	case status == agent.StatusStuck:
		m.finished = true
		m.autoplay = false
	}

	m.refreshOverlays()
}

// refreshOverlays mirrors the knowledge base into the Mangle kernel and pulls
// the derived frontier/risky predicates for display. Overlay failures only
// degrade the display; the episode itself is unaffected.
func (m *Model) refreshOverlays() {
	if err := m.kernel.Load(m.agent.Engine().Export(m.agent.Home())); err != nil {
		logging.UIDebug("kernel overlay load failed: %v", err)
		return
	}
	m.frontier = queryCells(m.kernel, "frontier")
	m.risky = queryCells(m.kernel, "risky")
}

func queryCells(k *core.Kernel, predicate string) map[grid.Coord]struct{} {
	facts, err := k.Query(predicate)
	if err != nil {
		logging.UIDebug("kernel query %s failed: %v", predicate, err)
		return nil
	}
	cells := make(map[grid.Coord]struct{}, len(facts))
	for _, f := range facts {
		if len(f.Args) == 2 {
			cells[grid.Coord{X: f.Args[0], Y: f.Args[1]}] = struct{}{}
		}
	}
	return cells
}

// Run starts the interactive viewer, including the rules watcher when a
// rules directory is configured.
func Run(cfg config.Config) error {
	m := NewModel(cfg)

	if cfg.Kernel.RulesDir != "" {
		watcher, err := core.NewRulesWatcher(cfg.Kernel.RulesDir, m.kernel, nil)
		if err != nil {
			return fmt.Errorf("rules watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("rules watcher: %w", err)
		}
		defer watcher.Stop()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
