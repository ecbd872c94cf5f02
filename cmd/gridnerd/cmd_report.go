package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"gridnerd/internal/store"
)

// reportCmd renders a markdown summary of a recorded episode in the terminal.
var reportCmd = &cobra.Command{
	Use:   "report <episode-id>",
	Short: "Render a markdown report for a recorded episode",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	ep, err := st.LoadEpisode(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(ep.ID)
	if err != nil {
		return err
	}

	md := buildReport(ep, steps)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// Plain markdown still reads fine.
		fmt.Print(md)
		return nil
	}
	out, err := renderer.Render(md)
	if err != nil {
		fmt.Print(md)
		return nil
	}
	fmt.Print(out)
	return nil
}

// buildReport assembles the episode report as markdown.
func buildReport(ep store.EpisodeRecord, steps []store.StepRow) string {
	var sb strings.Builder

	outcome := "died"
	switch {
	case ep.Escaped && ep.GoldHeld:
		outcome = "escaped with the gold"
	case ep.Escaped:
		outcome = "escaped empty-handed"
	case ep.Stuck:
		outcome = "stuck with no safe moves"
	}

	fmt.Fprintf(&sb, "# Episode %s\n\n", ep.ID)
	fmt.Fprintf(&sb, "- **World**: %dx%d (seed %d)\n", ep.Width, ep.Height, ep.Seed)
	fmt.Fprintf(&sb, "- **Outcome**: %s\n", outcome)
	fmt.Fprintf(&sb, "- **Steps**: %d\n", ep.Steps)
	fmt.Fprintf(&sb, "- **Run at**: %s\n\n", ep.CreatedAt.Format("2006-01-02 15:04:05"))

	var visited []string
	seen := map[[2]int]bool{}
	finalFacts := 0
	perceptsSeen := 0
	for _, s := range steps {
		key := [2]int{s.X, s.Y}
		if !seen[key] {
			seen[key] = true
			visited = append(visited, fmt.Sprintf("(%d,%d)", s.X, s.Y))
		}
		if s.Breeze || s.Stench {
			perceptsSeen++
		}
		finalFacts = s.Facts
	}

	fmt.Fprintf(&sb, "## Knowledge\n\n")
	fmt.Fprintf(&sb, "- Cells visited: %d of %d\n", len(visited), ep.Width*ep.Height)
	fmt.Fprintf(&sb, "- Steps with hazard percepts: %d\n", perceptsSeen)
	fmt.Fprintf(&sb, "- Facts at episode end: %d\n\n", finalFacts)

	fmt.Fprintf(&sb, "## Trace\n\n")
	fmt.Fprintf(&sb, "| Step | Cell | Heading | Decision |\n")
	fmt.Fprintf(&sb, "|------|------|---------|----------|\n")
	for _, s := range steps {
		fmt.Fprintf(&sb, "| %d | (%d,%d) | %s | %s |\n", s.Step, s.X, s.Y, s.Heading, s.Status)
	}
	return sb.String()
}
