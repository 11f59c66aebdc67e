package provider

import (
	"context"
	"os/exec"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"howett.net/plist"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// ioregTimeUnavailable is what macOS reports while it is still estimating.
const ioregTimeUnavailable = 65535

// smartBattery mirrors the AppleSmartBattery registry entry.
type smartBattery struct {
	BatteryInstalled  *bool `plist:"BatteryInstalled"`
	ExternalConnected bool  `plist:"ExternalConnected"`
	IsCharging        bool  `plist:"IsCharging"`
	MaxCapacity       *int  `plist:"MaxCapacity"`
	CurrentCapacity   *int  `plist:"CurrentCapacity"`
	AvgTimeToEmpty    *int  `plist:"AvgTimeToEmpty"`
	Location          int   `plist:"Location"`
}

// IOReg reads AppleSmartBattery entries from the macOS I/O Registry by
// running ioreg.
type IOReg struct {
	path string
	run  func(ctx context.Context, path string) ([]byte, error)
}

var _ PowerSourceProvider = &IOReg{}

// NewIOReg returns an IOReg provider using the ioreg binary at path, or the
// one in PATH when path is empty.
func NewIOReg(path string) *IOReg {
	if path == "" {
		path = "ioreg"
	}
	return &IOReg{
		path: path,
		run:  runIOReg,
	}
}

func runIOReg(ctx context.Context, path string) ([]byte, error) {
	return exec.CommandContext(ctx, path, "-rn", "AppleSmartBattery", "-a").Output()
}

func (r *IOReg) Name() string { return NameIOReg }

func (r *IOReg) ListPowerSources(ctx context.Context) ([]powerinfo.PowerSource, error) {
	logrus.Tracef("running %s", r.path)

	out, err := r.run(ctx, r.path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to run %s", r.path)
	}

	return parseIOReg(out)
}

func parseIOReg(out []byte) ([]powerinfo.PowerSource, error) {
	// Machines without a battery print nothing at all.
	if len(out) == 0 {
		return nil, nil
	}

	var batteries []smartBattery
	if _, err := plist.Unmarshal(out, &batteries); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to decode ioreg output")
	}

	sources := make([]powerinfo.PowerSource, 0, len(batteries))
	for _, b := range batteries {
		src := powerinfo.PowerSource{
			Name:            "InternalBattery-" + strconv.Itoa(b.Location),
			Present:         b.BatteryInstalled == nil || *b.BatteryInstalled,
			Kind:            powerinfo.KindBattery,
			Charging:        b.IsCharging,
			MaxCapacity:     b.MaxCapacity,
			CurrentCapacity: b.CurrentCapacity,
		}
		// The OS attributes a battery on external power to the AC source.
		if b.ExternalConnected {
			src.Kind = powerinfo.KindAC
		}
		if b.AvgTimeToEmpty != nil && *b.AvgTimeToEmpty != ioregTimeUnavailable {
			src.TimeToEmptyMinutes = b.AvgTimeToEmpty
		}
		sources = append(sources, src)
	}

	return sources, nil
}
