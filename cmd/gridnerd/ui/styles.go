// Package ui provides the interactive terminal viewer for gridNERD episodes:
// a lipgloss-styled grid pane beside a live knowledge pane, driven by a
// bubbletea model.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Semantic colors match their meaning in the grid legend.
var (
	ColorAgent    = lipgloss.Color("#8BC34A") // lime green
	ColorVisited  = lipgloss.Color("#4db6ac") // teal
	ColorSafe     = lipgloss.Color("#2196F3") // blue
	ColorFrontier = lipgloss.Color("#FFC107") // yellow
	ColorRisky    = lipgloss.Color("#ff8a65") // orange-red
	ColorHazard   = lipgloss.Color("#e53935") // red
	ColorMuted    = lipgloss.Color("#5c6773")
	ColorText     = lipgloss.Color("#f2f2f2")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAgent)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	CellAgentStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAgent)
	CellVisitedStyle  = lipgloss.NewStyle().Foreground(ColorVisited)
	CellSafeStyle     = lipgloss.NewStyle().Foreground(ColorSafe)
	CellFrontierStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorFrontier)
	CellRiskyStyle    = lipgloss.NewStyle().Foreground(ColorRisky)
	CellHazardStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHazard)
	CellUnknownStyle  = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusStyle = lipgloss.NewStyle().Foreground(ColorText)
	HelpStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	DeadStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHazard)
	WinStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAgent)
)
