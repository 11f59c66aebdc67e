package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
	"github.com/charlie0129/powerstate/pkg/smc"
)

// SMC derives a single power source from Apple SMC keys. It needs no helper
// binary but cannot estimate time remaining.
type SMC struct {
	conn *smc.Reader
}

var _ PowerSourceProvider = &SMC{}

// NewSMC returns a provider reading from conn. The connection is opened
// lazily on first use.
func NewSMC(conn *smc.Reader) *SMC {
	return &SMC{conn: conn}
}

func newSMCProvider() (PowerSourceProvider, error) {
	return NewSMC(smc.New()), nil
}

func (s *SMC) Name() string { return NameSMC }

func (s *SMC) ListPowerSources(ctx context.Context) ([]powerinfo.PowerSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.conn.Open(); err != nil {
		return nil, err
	}

	charge, err := s.conn.GetBatteryCharge()
	if err != nil {
		return nil, err
	}

	pluggedIn, err := s.conn.IsPluggedIn()
	if err != nil {
		return nil, err
	}

	chargingEnabled, err := s.conn.IsChargingEnabled()
	if err != nil {
		logrus.Debugf("IsChargingEnabled failed, assuming enabled: %v", err)
		chargingEnabled = true
	}

	src := powerinfo.PowerSource{
		Name:            "InternalBattery-0",
		Present:         true,
		Kind:            powerinfo.KindBattery,
		Charging:        pluggedIn && chargingEnabled && charge < 100,
		MaxCapacity:     powerinfo.Int(100),
		CurrentCapacity: powerinfo.Int(charge),
	}
	if pluggedIn {
		src.Kind = powerinfo.KindAC
	}

	return []powerinfo.PowerSource{src}, nil
}
