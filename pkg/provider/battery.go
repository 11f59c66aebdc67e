//go:build darwin || linux || windows || freebsd || dragonfly || netbsd || openbsd || solaris

package provider

import (
	"context"
	"math"
	"strconv"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// Battery lists batteries through github.com/distatus/battery.
//
// That library does not report AC adapters, so a battery that is charging, or
// idle while full or in an unknown state, is reported as an AC source.
type Battery struct {
	getAll func() ([]*battery.Battery, error)
}

var _ PowerSourceProvider = &Battery{}

func NewBattery() *Battery {
	return &Battery{
		getAll: battery.GetAll,
	}
}

func newBatteryProvider() (PowerSourceProvider, error) {
	return NewBattery(), nil
}

func (b *Battery) Name() string { return NameBattery }

func (b *Battery) ListPowerSources(ctx context.Context) ([]powerinfo.PowerSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batteries, err := b.getAll()
	if err != nil {
		errs, partial := err.(battery.Errors)
		if !partial {
			return nil, pkgerrors.Wrap(err, "failed to read batteries")
		}
		// Keep whatever could be read.
		for i, e := range errs {
			if e != nil {
				logrus.WithField("index", i).Debugf("partial battery read: %v", e)
			}
		}
	}

	sources := make([]powerinfo.PowerSource, 0, len(batteries))
	for i, bat := range batteries {
		if bat == nil {
			continue
		}
		sources = append(sources, convertBattery(strconv.Itoa(i), bat))
	}

	return sources, nil
}

func convertBattery(name string, bat *battery.Battery) powerinfo.PowerSource {
	src := powerinfo.PowerSource{
		Name:    name,
		Present: true,
		Kind:    powerinfo.KindBattery,
	}

	switch bat.State {
	case battery.Charging:
		src.Kind = powerinfo.KindAC
		src.Charging = true
	case battery.Full, battery.Unknown:
		// Linux reports "Not charging" as Unknown while plugged in. Neither
		// state carries a current when the adapter holds the battery.
		if bat.ChargeRate == 0 {
			src.Kind = powerinfo.KindAC
		}
	}

	if bat.Full > 0 {
		src.MaxCapacity = powerinfo.Int(int(math.Round(bat.Full)))
	}
	if bat.Current >= 0 {
		src.CurrentCapacity = powerinfo.Int(int(math.Round(bat.Current)))
	}

	// Current is in mWh and ChargeRate in mW.
	if src.Kind == powerinfo.KindBattery && bat.ChargeRate != 0 {
		src.TimeToEmptyMinutes = powerinfo.Int(int(bat.Current / math.Abs(bat.ChargeRate) * 60))
	}

	return src
}
