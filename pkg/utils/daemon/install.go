package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Install registers u with the platform service manager and starts it.
func Install(u Unit) error {
	switch runtime.GOOS {
	case "darwin":
		content, err := LaunchdPlist(u)
		if err != nil {
			return err
		}
		if err := writeServiceFile(LaunchdPlistPath, content); err != nil {
			return err
		}

		logrus.Infof("starting powerstate")

		// run launchctl load /Library/LaunchDaemons/<label>.plist
		if err := exec.Command("/bin/launchctl", "load", LaunchdPlistPath).Run(); err != nil {
			return fmt.Errorf("failed to load %s: %w", LaunchdPlistPath, err)
		}
	case "linux":
		if err := writeServiceFile(SystemdUnitPath, []byte(SystemdUnit(u))); err != nil {
			return err
		}

		logrus.Infof("starting powerstate")

		if err := exec.Command("systemctl", "daemon-reload").Run(); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}
		if err := exec.Command("systemctl", "enable", "--now", filepath.Base(SystemdUnitPath)).Run(); err != nil {
			return fmt.Errorf("failed to enable %s: %w", SystemdUnitPath, err)
		}
	default:
		return fmt.Errorf("installing a service is not supported on %s", runtime.GOOS)
	}

	return nil
}

func writeServiceFile(path string, content []byte) error {
	logrus.Infof("writing service definition to %s", path)

	// mkdir -p
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	// warn if the file already exists
	if _, err := os.Stat(path); err == nil {
		logrus.Warnf("%s already exists, overwriting", path)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// chown root
	if err := os.Chown(path, 0, 0); err != nil {
		return fmt.Errorf("failed to chown %s: %w", path, err)
	}

	return nil
}
