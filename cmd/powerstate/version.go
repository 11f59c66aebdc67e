package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/powerstate/pkg/client"
	"github.com/charlie0129/powerstate/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version",
		GroupID: gAdvanced,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			daemonVersion, err := newAPIClient().GetVersion()
			switch {
			case err == nil:
				cmd.Printf("daemon: %s\n", daemonVersion)
				if daemonVersion != version.Version {
					logrus.WithFields(logrus.Fields{
						"clientVersion": version.Version,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon.")
				}
			case errors.Is(err, client.ErrDaemonNotRunning):
				logrus.Debug("daemon is not running")
			default:
				logrus.Debugf("failed to get daemon version: %v", err)
			}
		},
	}
}
