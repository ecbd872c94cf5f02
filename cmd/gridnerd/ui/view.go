package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridnerd/internal/core"
	"gridnerd/internal/grid"
)

// View implements tea.Model.
func (m Model) View() string {
	title := TitleStyle.Render("gridNERD — Wumpus World")

	gridPane := PaneStyle.Render(m.renderGrid())
	knowledgePane := PaneStyle.Render(m.renderKnowledge())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, gridPane, " ", knowledgePane)

	status := m.renderStatus()
	help := HelpStyle.Render("space step · a autoplay · r reset · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, panes, status, help)
}

// renderGrid draws the board top row first. Hazards are revealed only once
// the episode is over.
func (m Model) renderGrid() string {
	reveal := m.finished
	var pits map[grid.Coord]struct{}
	var wumpus, gold grid.Coord
	if reveal {
		pitList, w, g := m.world.HazardsRevealed()
		pits = make(map[grid.Coord]struct{}, len(pitList))
		for _, p := range pitList {
			pits[p] = struct{}{}
		}
		wumpus, gold = w, g
	}

	var sb strings.Builder
	for y := m.world.Height; y >= 1; y-- {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 1; x <= m.world.Width; x++ {
			c := grid.Coord{X: x, Y: y}
			sb.WriteString(m.renderCell(c, reveal, pits, wumpus, gold))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   ")
	for x := 1; x <= m.world.Width; x++ {
		fmt.Fprintf(&sb, " %d ", x)
	}
	return sb.String()
}

func (m Model) renderCell(c grid.Coord, reveal bool, pits map[grid.Coord]struct{}, wumpus, gold grid.Coord) string {
	if c == m.world.AgentPos() && m.world.Alive() {
		return CellAgentStyle.Render(" A ")
	}
	if reveal {
		if _, pit := pits[c]; pit {
			return CellHazardStyle.Render(" P ")
		}
		if c == wumpus {
			return CellHazardStyle.Render(" W ")
		}
		if c == gold && !m.world.HasGold() {
			return CellFrontierStyle.Render(" G ")
		}
	}
	if m.agent.Visited(c) {
		return CellVisitedStyle.Render(" · ")
	}
	if _, ok := m.frontier[c]; ok {
		return CellFrontierStyle.Render(" ? ")
	}
	if m.agent.Engine().IsSafe(c) {
		return CellSafeStyle.Render(" s ")
	}
	if _, ok := m.risky[c]; ok {
		return CellRiskyStyle.Render(" ! ")
	}
	return CellUnknownStyle.Render(" . ")
}

// renderKnowledge shows the knowledge base state: counters, live clauses and
// the agent's behavioral mode.
func (m Model) renderKnowledge() string {
	engine := m.agent.Engine()
	facts := engine.Facts()

	var sb strings.Builder
	fmt.Fprintf(&sb, "step      %d\n", m.step)
	fmt.Fprintf(&sb, "state     %s\n", m.agent.State())
	fmt.Fprintf(&sb, "facts     %d\n", facts.Len())
	fmt.Fprintf(&sb, "safe      %d\n", len(facts.CellsWith(core.PropSafe)))
	fmt.Fprintf(&sb, "visited   %d\n", m.agent.VisitedCount())
	fmt.Fprintf(&sb, "frontier  %d\n", len(m.frontier))
	sb.WriteString("\n")

	writeClauses(&sb, "pit clauses", engine.PitClauses())
	writeClauses(&sb, "wumpus clauses", engine.WumpusClauses())

	sb.WriteString("\nlegend: A agent · visited ? frontier\n")
	sb.WriteString("        s safe ! risky . unknown")
	return sb.String()
}

func writeClauses(sb *strings.Builder, label string, cs *core.ClauseSet) {
	fmt.Fprintf(sb, "%s (%d)\n", label, cs.Len())
	for i, cands := range cs.Candidates() {
		if i >= 4 {
			fmt.Fprintf(sb, "  …\n")
			break
		}
		parts := make([]string, len(cands))
		for j, c := range cands {
			parts[j] = c.String()
		}
		fmt.Fprintf(sb, "  %s\n", strings.Join(parts, " ∨ "))
	}
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return DeadStyle.Render(fmt.Sprintf("error: %v", m.err))
	}
	switch {
	case !m.world.Alive():
		return DeadStyle.Render("agent died — " + m.status)
	case m.world.Escaped() && m.world.HasGold():
		return WinStyle.Render("escaped with the gold — " + m.status)
	case m.world.Escaped():
		return WinStyle.Render("escaped empty-handed — " + m.status)
	}
	if m.autoplay && !m.finished {
		return m.spinner.View() + StatusStyle.Render(m.status)
	}
	return StatusStyle.Render(m.status)
}
