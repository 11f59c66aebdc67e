package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Uninstall stops the service and removes its definition.
func Uninstall() error {
	logrus.Infof("stopping powerstate")

	var path string
	switch runtime.GOOS {
	case "darwin":
		path = LaunchdPlistPath
		// run launchctl unload /Library/LaunchDaemons/<label>.plist
		if err := exec.Command("/bin/launchctl", "unload", path).Run(); err != nil {
			return fmt.Errorf("failed to unload %s: %w. Are you root?", path, err)
		}
	case "linux":
		path = SystemdUnitPath
		if err := exec.Command("systemctl", "disable", "--now", filepath.Base(path)).Run(); err != nil {
			return fmt.Errorf("failed to disable %s: %w. Are you root?", path, err)
		}
	default:
		return fmt.Errorf("uninstalling a service is not supported on %s", runtime.GOOS)
	}

	logrus.Infof("removing service definition")

	// if the file doesn't exist, we don't need to remove it
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", path, err)
	}

	return nil
}
