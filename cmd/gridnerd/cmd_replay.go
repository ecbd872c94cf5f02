package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gridnerd/internal/store"
)

// replayCmd prints a recorded episode step by step.
var replayCmd = &cobra.Command{
	Use:   "replay [episode-id]",
	Short: "Print a recorded episode trace",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 0 {
		eps, err := st.ListEpisodes(20)
		if err != nil {
			return err
		}
		if len(eps) == 0 {
			fmt.Println("no recorded episodes; run with --record first")
			return nil
		}
		fmt.Println("recent episodes:")
		for _, ep := range eps {
			fmt.Printf("  %s  %s  %dx%d seed=%d steps=%d escaped=%v gold=%v\n",
				ep.ID, ep.CreatedAt.Format("2006-01-02 15:04:05"),
				ep.Width, ep.Height, ep.Seed, ep.Steps, ep.Escaped, ep.GoldHeld)
		}
		return nil
	}

	ep, err := st.LoadEpisode(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(ep.ID)
	if err != nil {
		return err
	}

	fmt.Printf("episode %s  %dx%d seed=%d\n\n", ep.ID, ep.Width, ep.Height, ep.Seed)
	for _, s := range steps {
		percepts := ""
		if s.Breeze {
			percepts += " breeze"
		}
		if s.Stench {
			percepts += " stench"
		}
		if s.Glitter {
			percepts += " glitter"
		}
		fmt.Printf("step %3d  (%d,%d) %-5s facts=%-3d%s\n          %s\n",
			s.Step, s.X, s.Y, s.Heading, s.Facts, percepts, s.Status)
	}
	fmt.Printf("\nescaped=%v alive=%v gold=%v stuck=%v\n",
		ep.Escaped, ep.Alive, ep.GoldHeld, ep.Stuck)
	return nil
}
