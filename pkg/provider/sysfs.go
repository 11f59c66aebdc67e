package provider

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// Sysfs reads power supplies from the Linux power_supply class directory.
type Sysfs struct {
	root string
}

var _ PowerSourceProvider = &Sysfs{}

// NewSysfs returns a Sysfs provider rooted at root, or at
// /sys/class/power_supply when root is empty.
func NewSysfs(root string) *Sysfs {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &Sysfs{root: root}
}

func (s *Sysfs) Name() string { return NameSysfs }

func (s *Sysfs) ListPowerSources(ctx context.Context) ([]powerinfo.PowerSource, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			// No power_supply class at all, e.g. in containers.
			return nil, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to list %s", s.root)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	sources := make([]powerinfo.PowerSource, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := readSupply(filepath.Join(s.root, name))
		if err != nil {
			logrus.WithField("supply", name).Debugf("skipping power supply: %v", err)
			continue
		}
		src.Name = name
		sources = append(sources, src)
	}

	return sources, nil
}

func readSupply(dir string) (powerinfo.PowerSource, error) {
	src := powerinfo.PowerSource{}

	typ, ok := readString(dir, "type")
	if !ok {
		return src, pkgerrors.Errorf("no type in %s", dir)
	}

	switch typ {
	case "Mains", "USB", "Wireless":
		src.Kind = powerinfo.KindAC
		online, _ := readInt(dir, "online")
		src.Present = online == 1
		return src, nil
	case "Battery":
		src.Kind = powerinfo.KindBattery
	default:
		src.Kind = powerinfo.KindOther
		return src, nil
	}

	src.Present = true
	if present, ok := readInt(dir, "present"); ok {
		src.Present = present != 0
	}

	status, _ := readString(dir, "status")
	src.Charging = status == "Charging"

	now, full, ok := readCapacity(dir)
	if ok {
		src.CurrentCapacity = powerinfo.Int(now)
		src.MaxCapacity = powerinfo.Int(full)
	}

	if secs, ok := readInt(dir, "time_to_empty_now"); ok && secs >= 0 {
		src.TimeToEmptyMinutes = powerinfo.Int(secs / 60)
	} else if status == "Discharging" {
		energy, okEnergy := readInt(dir, "energy_now")
		power, okPower := readInt(dir, "power_now")
		if okEnergy && okPower && power > 0 {
			// µWh / µW = hours
			src.TimeToEmptyMinutes = powerinfo.Int(int(float64(energy) / float64(power) * 60))
		}
	}

	return src, nil
}

// readCapacity returns the current and full capacity of a battery, preferring
// energy over charge counters and falling back to the capacity percentage.
func readCapacity(dir string) (now, full int, ok bool) {
	for _, prefix := range []string{"energy", "charge"} {
		n, okNow := readInt(dir, prefix+"_now")
		f, okFull := readInt(dir, prefix+"_full")
		if okNow && okFull {
			return n, f, true
		}
	}

	if pct, okPct := readInt(dir, "capacity"); okPct {
		return pct, 100, true
	}

	return 0, 0, false
}

func readString(dir, filename string) (string, bool) {
	b, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func readInt(dir, filename string) (int, bool) {
	s, ok := readString(dir, filename)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
