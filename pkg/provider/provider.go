// Package provider lists the power sources reported by the operating system.
//
// Each backend implements PowerSourceProvider. The default backend is chosen
// at build time for the target OS and can be overridden by name at startup.
package provider

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

var (
	// ErrUnsupported is returned when a backend is not built for this platform.
	ErrUnsupported = errors.New("power source backend not supported on this platform")

	// ErrUnknownProvider is returned for unrecognized backend names.
	ErrUnknownProvider = errors.New("unknown power source provider")
)

// Backend names.
const (
	NameAuto    = "auto"
	NameNone    = "none"
	NameSysfs   = "sysfs"
	NameIOReg   = "ioreg"
	NameSMC     = "smc"
	NameBattery = "battery"
	NameFixture = "fixture"
)

const DefaultSysfsRoot = "/sys/class/power_supply"

// PowerSourceProvider enumerates currently attached power sources.
type PowerSourceProvider interface {
	Name() string
	// ListPowerSources returns every source the OS reports. An empty list
	// is not an error.
	ListPowerSources(ctx context.Context) ([]powerinfo.PowerSource, error)
}

// Options configures the backends created by New.
type Options struct {
	SysfsRoot   string
	FixturePath string
	IORegPath   string
}

// Names returns all backend names New understands.
func Names() []string {
	return []string{NameAuto, NameNone, NameSysfs, NameIOReg, NameSMC, NameBattery, NameFixture}
}

// DefaultName returns the backend used on this platform when none is chosen.
func DefaultName() string {
	return defaultProviderName
}

// Default returns the default backend for this platform with default options.
func Default() PowerSourceProvider {
	p, err := New(NameAuto, Options{})
	if err != nil {
		return Noop{}
	}
	return p
}

// New creates the backend with the given name.
func New(name string, opts Options) (PowerSourceProvider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == NameAuto {
		name = defaultProviderName
	}

	switch name {
	case NameNone:
		return Noop{}, nil
	case NameSysfs:
		return NewSysfs(opts.SysfsRoot), nil
	case NameIOReg:
		return NewIOReg(opts.IORegPath), nil
	case NameFixture:
		if opts.FixturePath == "" {
			return nil, pkgerrors.New("fixture provider requires a fixture path")
		}
		return NewFixture(opts.FixturePath), nil
	case NameSMC:
		return newSMCProvider()
	case NameBattery:
		return newBatteryProvider()
	default:
		return nil, pkgerrors.Wrapf(ErrUnknownProvider, "%q (valid: %s)", name, strings.Join(Names(), ", "))
	}
}

// Noop reports no power sources. It backs platforms without an implementation.
type Noop struct{}

func (Noop) Name() string { return NameNone }

func (Noop) ListPowerSources(context.Context) ([]powerinfo.PowerSource, error) {
	return nil, nil
}
