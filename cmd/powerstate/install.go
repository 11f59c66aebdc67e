package main

import (
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	daemonutils "github.com/charlie0129/powerstate/pkg/utils/daemon"
)

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install powerstate daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Install powerstate daemon to launchd (macOS) or systemd (Linux).

This makes the daemon run in the background and automatically start on boot. You must run this command as root.

By default, only root user is allowed to access the daemon. Use --allow-non-root-access to let other users query it without sudo.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the powerstate daemon.")
			} else {
				logrus.Info("only root user is allowed to access the powerstate daemon.")
			}

			exePath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get the path to the current executable: %w", err)
			}
			exePath, err = filepath.Abs(exePath)
			if err != nil {
				return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
			}
			logrus.Infof("current executable path: %s", exePath)

			// Saved before starting so the daemon reads the new settings.
			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			err = daemonutils.Install(daemonutils.Unit{
				ExePath:    exePath,
				ConfigPath: configPath,
				SocketPath: unixSocketPath,
			})
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %v. Are you root?", err)
			}

			logrus.Infof("installation succeeded")

			cmd.Printf("The service will use the current binary (%s) at startup so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run `powerstate install' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access powerstate daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall powerstate daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Stop the powerstate daemon and remove it from launchd or systemd.

You must run this command as root.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.Uninstall()
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			cmd.Println("successfully uninstalled")
			cmd.Printf("Your config is kept in %s. Remove it and the powerstate binary manually for a complete uninstall.\n", configPath)

			return nil
		},
	}
}
