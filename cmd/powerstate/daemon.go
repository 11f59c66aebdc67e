package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/powerstate/pkg/daemon"
	"github.com/charlie0129/powerstate/pkg/version"
)

var (
	// allowNonRootAccess indicates whether non-root users may access the daemon socket.
	allowNonRootAccess = false
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run powerstate daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("powerstate daemon starting")

			conf, err := loadConfig()
			if err != nil {
				return err
			}
			return daemon.Run(conf, unixSocketPath, allowNonRootAccess)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&allowNonRootAccess, "allow-non-root-access", false,
		"Allow non-root users to access the daemon.")

	return cmd
}
