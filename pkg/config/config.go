package config

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/provider"
)

type Config interface {
	// Provider is the power source backend name, "auto" for the platform default.
	Provider() string
	SysfsRoot() string
	FixturePath() string
	PollIntervalSeconds() int
	AllowNonRootAccess() bool
	ProviderOptions() provider.Options

	SetProvider(string)
	SetPollIntervalSeconds(int)
	SetAllowNonRootAccess(bool)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
