// Package powerstate reports a normalized summary of the host's power
// sources: whether it is charging, and how much time and charge remain.
package powerstate

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
	"github.com/charlie0129/powerstate/pkg/provider"
)

// Snapshot is the raw power sources together with their reconciled summary.
type Snapshot struct {
	Provider string                  `json:"provider"`
	Sources  []powerinfo.PowerSource `json:"sources"`
	Info     powerinfo.PowerInfo     `json:"info"`
}

// GetPowerState queries the default backend for this platform. It never
// fails: when nothing can be read the result is the zero PowerInfo, whose
// State is powerinfo.Unknown.
func GetPowerState() powerinfo.PowerInfo {
	return Get(context.Background(), provider.Default())
}

// Get queries p and reconciles its power sources. Errors are logged and
// reported as powerinfo.Unknown.
func Get(ctx context.Context, p provider.PowerSourceProvider) powerinfo.PowerInfo {
	snap, err := Take(ctx, p)
	if err != nil {
		logrus.WithField("provider", providerName(p)).Warnf("failed to list power sources: %v", err)
		return powerinfo.PowerInfo{}
	}
	return snap.Info
}

// Take lists the power sources of p and reconciles them.
func Take(ctx context.Context, p provider.PowerSourceProvider) (Snapshot, error) {
	if p == nil {
		return Snapshot{Provider: provider.NameNone}, nil
	}

	sources, err := p.ListPowerSources(ctx)
	if err != nil {
		return Snapshot{Provider: p.Name()}, err
	}

	info := powerinfo.Query(sources)
	logrus.WithFields(logrus.Fields{
		"provider": p.Name(),
		"sources":  len(sources),
		"state":    info.State,
		"seconds":  info.Seconds,
		"percent":  info.Percent,
	}).Trace("power state queried")

	return Snapshot{
		Provider: p.Name(),
		Sources:  sources,
		Info:     info,
	}, nil
}

func providerName(p provider.PowerSourceProvider) string {
	if p == nil {
		return provider.NameNone
	}
	return p.Name()
}
