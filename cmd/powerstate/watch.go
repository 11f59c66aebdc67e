package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/powerstate"
	"github.com/charlie0129/powerstate/pkg/events"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func NewWatchCommand() *cobra.Command {
	var (
		interval   time.Duration
		fromDaemon bool
	)

	cmd := &cobra.Command{
		Use:     "watch",
		GroupID: gBasic,
		Short:   "Print a line whenever the power state changes",
		Long: `Print a line whenever the power state changes, until interrupted.

Locally the OS is polled every --interval. With --daemon the daemon's event
stream is followed instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval < time.Second {
				return fmt.Errorf("interval must be at least 1s, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if fromDaemon {
				return watchDaemon(ctx, cmd)
			}
			return watchLocal(ctx, cmd, interval)
		},
	}

	f := cmd.Flags()
	f.DurationVar(&interval, "interval", 5*time.Second, "poll interval when querying the OS directly")
	f.BoolVar(&fromDaemon, "daemon", false, "follow the daemon's event stream instead of polling the OS")

	return cmd
}

func watchLocal(ctx context.Context, cmd *cobra.Command, interval time.Duration) error {
	p, err := newLocalProvider()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last powerinfo.PowerInfo
	first := true
	for {
		info := powerstate.Get(ctx, p)
		if first || info != last {
			cmd.Printf("%s %s\n", time.Now().Format(time.TimeOnly), infoLine(info))
			last, first = info, false
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func watchDaemon(ctx context.Context, cmd *cobra.Command) error {
	ch, err := newAPIClient().SubscribeEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to daemon events: %w", err)
	}

	for ev := range ch {
		if ev.Name != events.PowerState {
			logrus.Debugf("ignoring %s event", ev.Name)
			continue
		}
		payload, err := events.DecodeAs[events.PowerStateEvent](ev)
		if err != nil {
			logrus.Warnf("failed to decode %s event: %v", ev.Name, err)
			continue
		}

		var to powerinfo.State
		if err := to.UnmarshalText([]byte(payload.To)); err != nil {
			logrus.Warnf("unexpected state in event: %v", err)
		}
		info := powerinfo.PowerInfo{State: to, Seconds: payload.Seconds, Percent: payload.Percent}
		cmd.Printf("%s %s (was %s)\n", time.Unix(payload.Ts, 0).Format(time.TimeOnly), infoLine(info), payload.From)
	}

	if ctx.Err() == nil {
		return fmt.Errorf("daemon closed the event stream")
	}
	return nil
}
