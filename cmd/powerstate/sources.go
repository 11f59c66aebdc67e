package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/charlie0129/powerstate"
)

func fetchSnapshot(cmd *cobra.Command, fromDaemon bool) (*powerstate.Snapshot, error) {
	if fromDaemon {
		snap, err := newAPIClient().GetPowerSources()
		if err != nil {
			return nil, fmt.Errorf("failed to get power sources from daemon: %w", err)
		}
		return snap, nil
	}

	p, err := newLocalProvider()
	if err != nil {
		return nil, err
	}
	snap, err := powerstate.Take(cmd.Context(), p)
	if err != nil {
		return nil, fmt.Errorf("failed to list power sources: %w", err)
	}
	return &snap, nil
}

func intText(p *int, unit string) string {
	if p == nil {
		return "n/a"
	}
	return strconv.Itoa(*p) + unit
}

func NewSourcesCommand() *cobra.Command {
	var (
		asJSON     bool
		fromDaemon bool
	)

	cmd := &cobra.Command{
		Use:     "sources",
		GroupID: gBasic,
		Short:   "List the raw power sources reported by the provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := fetchSnapshot(cmd, fromDaemon)
			if err != nil {
				return err
			}

			if asJSON {
				b, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal power sources: %w", err)
				}
				cmd.Println(string(b))
				return nil
			}

			cmd.Printf("Provider: %s\n", bold("%s", snap.Provider))
			if len(snap.Sources) == 0 {
				cmd.Println("  No power sources reported.")
			}
			for i, s := range snap.Sources {
				name := s.Name
				if name == "" {
					name = "#" + strconv.Itoa(i)
				}
				cmd.Println()
				cmd.Println(bold("%s (%s):", name, s.Kind))
				cmd.Printf("  Present: %s\n", bool2Text(s.Present))
				cmd.Printf("  Charging: %s\n", bool2Text(s.Charging))
				cmd.Printf("  Capacity: %s / %s\n", intText(s.CurrentCapacity, ""), intText(s.MaxCapacity, ""))
				cmd.Printf("  Time to empty: %s\n", intText(s.TimeToEmptyMinutes, " min"))
			}

			cmd.Println()
			cmd.Printf("Summary: %s\n", infoLine(snap.Info))
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&asJSON, "json", false, "print the sources as JSON")
	f.BoolVar(&fromDaemon, "daemon", false, "ask the running daemon instead of querying the OS")

	return cmd
}
