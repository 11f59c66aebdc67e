package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/powerstate"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

type statusJSON struct {
	State          string `json:"state"`
	Seconds        int    `json:"seconds"`
	Percent        int    `json:"percent"`
	SecondsUnknown bool   `json:"secondsUnknown"`
	PercentUnknown bool   `json:"percentUnknown"`
	FromDaemon     bool   `json:"fromDaemon"`
}

func fetchPowerState(cmd *cobra.Command, fromDaemon bool) (powerinfo.PowerInfo, error) {
	if fromDaemon {
		info, err := newAPIClient().GetPowerState(false)
		if err != nil {
			return powerinfo.PowerInfo{}, fmt.Errorf("failed to get power state from daemon: %w", err)
		}
		return info, nil
	}

	p, err := newLocalProvider()
	if err != nil {
		return powerinfo.PowerInfo{}, err
	}
	return powerstate.Get(cmd.Context(), p), nil
}

func NewStatusCommand() *cobra.Command {
	var (
		asJSON     bool
		fromDaemon bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Show the current power state",
		Long: `Show whether the machine is charging, the remaining battery time and the
remaining charge.

By default the operating system is queried directly. With --daemon the
running powerstate daemon is asked instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := fetchPowerState(cmd, fromDaemon)
			if err != nil {
				return err
			}

			if asJSON {
				b, err := json.MarshalIndent(statusJSON{
					State:          info.State.String(),
					Seconds:        info.Seconds,
					Percent:        info.Percent,
					SecondsUnknown: !info.HasSeconds(),
					PercentUnknown: !info.HasPercent(),
					FromDaemon:     fromDaemon,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal status: %w", err)
				}
				cmd.Println(string(b))
				return nil
			}

			cmd.Println(bold("Power status:"))
			cmd.Printf("  State: %s\n", bold("%s", stateText(info.State)))
			cmd.Printf("  Charge: %s\n", bold("%s", percentText(info)))
			label := "Time remaining"
			if info.State == powerinfo.Charging {
				label = "Time to full"
			}
			cmd.Printf("  %s: %s\n", label, bold("%s", secondsText(info)))
			cmd.Printf("  Battery present: %s\n", bool2Text(info.State != powerinfo.Unknown && info.State != powerinfo.NoBattery))
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&asJSON, "json", false, "print the status as JSON")
	f.BoolVar(&fromDaemon, "daemon", false, "ask the running daemon instead of querying the OS")

	return cmd
}
