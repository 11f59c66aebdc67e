//go:build !darwin && !linux && !windows && !freebsd && !dragonfly && !netbsd && !openbsd && !solaris

package provider

import pkgerrors "github.com/pkg/errors"

func newBatteryProvider() (PowerSourceProvider, error) {
	return nil, pkgerrors.Wrap(ErrUnsupported, NameBattery)
}
