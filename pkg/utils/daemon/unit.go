package daemon

import (
	"fmt"
	"strings"

	"howett.net/plist"
)

const (
	Label = "io.github.charlie0129.powerstate"

	LaunchdPlistPath = "/Library/LaunchDaemons/" + Label + ".plist"
	SystemdUnitPath  = "/etc/systemd/system/powerstate.service"

	logPath = "/var/log/powerstate.log"
)

// Unit describes how the service manager should start the daemon.
type Unit struct {
	ExePath            string
	ConfigPath         string
	SocketPath         string
	AllowNonRootAccess bool
}

// Args returns the daemon command line, executable first.
func (u Unit) Args() []string {
	args := []string{u.ExePath, "daemon"}
	if u.ConfigPath != "" {
		args = append(args, "--config", u.ConfigPath)
	}
	if u.SocketPath != "" {
		args = append(args, "--daemon-socket", u.SocketPath)
	}
	if u.AllowNonRootAccess {
		args = append(args, "--allow-non-root-access")
	}
	return args
}

type launchdJob struct {
	Label             string   `plist:"Label"`
	ProgramArguments  []string `plist:"ProgramArguments"`
	RunAtLoad         bool     `plist:"RunAtLoad"`
	KeepAlive         bool     `plist:"KeepAlive"`
	StandardOutPath   string   `plist:"StandardOutPath"`
	StandardErrorPath string   `plist:"StandardErrorPath"`
}

// LaunchdPlist renders the launch daemon definition for u.
func LaunchdPlist(u Unit) ([]byte, error) {
	b, err := plist.MarshalIndent(launchdJob{
		Label:             Label,
		ProgramArguments:  u.Args(),
		RunAtLoad:         true,
		KeepAlive:         true,
		StandardOutPath:   logPath,
		StandardErrorPath: logPath,
	}, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode launchd plist: %w", err)
	}
	return b, nil
}

// SystemdUnit renders the systemd service definition for u.
func SystemdUnit(u Unit) string {
	quoted := make([]string, 0, len(u.Args()))
	for _, a := range u.Args() {
		if strings.ContainsAny(a, " \t\"") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		quoted = append(quoted, a)
	}

	return fmt.Sprintf(`[Unit]
Description=powerstate daemon
After=local-fs.target

[Service]
Type=simple
ExecStart=%s
ExecReload=/bin/kill -HUP $MAINPID
Restart=on-failure

[Install]
WantedBy=multi-user.target
`, strings.Join(quoted, " "))
}
