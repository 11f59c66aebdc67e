package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/client"
	"github.com/charlie0129/powerstate/pkg/config"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
	"github.com/charlie0129/powerstate/pkg/provider"
)

func newAPIClient() *client.Client {
	return client.NewClient(unixSocketPath)
}

// loadConfig reads the config file and applies the --provider override.
func loadConfig() (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if providerName != "" {
		conf.OverrideProvider(providerName)
	}

	return conf, nil
}

func newLocalProvider() (provider.PowerSourceProvider, error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")

	p, err := provider.New(conf.Provider(), conf.ProviderOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return p, nil
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func stateText(s powerinfo.State) string {
	switch s {
	case powerinfo.Charging:
		return color.GreenString(s.String())
	case powerinfo.Charged:
		return color.CyanString(s.String())
	case powerinfo.OnBattery:
		return color.YellowString(s.String())
	default:
		return s.String()
	}
}

func percentText(info powerinfo.PowerInfo) string {
	if !info.HasPercent() {
		return "unknown"
	}
	return fmt.Sprintf("%d%%", info.Percent)
}

func secondsText(info powerinfo.PowerInfo) string {
	if !info.HasSeconds() {
		return "unknown"
	}
	return (time.Duration(info.Seconds) * time.Second).String()
}

// infoLine renders info on a single line, as printed by watch.
func infoLine(info powerinfo.PowerInfo) string {
	return fmt.Sprintf("state=%s percent=%s remaining=%s", info.State, percentText(info), secondsText(info))
}
