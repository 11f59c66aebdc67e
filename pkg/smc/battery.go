//go:build darwin

package smc

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GetBatteryCharge returns the battery charge in percent.
func (r *Reader) GetBatteryCharge() (int, error) {
	logrus.Tracef("GetBatteryCharge called")

	v, err := r.Read(BatteryChargeKey)
	if err != nil {
		return 0, err
	}

	if len(v.Bytes) != 1 {
		return 0, pkgerrors.Errorf("incorrect data length %d!=1", len(v.Bytes))
	}

	return int(v.Bytes[0]), nil
}

// IsPluggedIn returns whether an adapter is supplying power.
func (r *Reader) IsPluggedIn() (bool, error) {
	logrus.Tracef("IsPluggedIn called")

	v, err := r.Read(ACPowerKey)
	if err != nil {
		return false, err
	}

	ret := len(v.Bytes) == 1 && int8(v.Bytes[0]) > 0
	logrus.Tracef("IsPluggedIn returned %t", ret)

	return ret, nil
}

// IsChargingEnabled returns whether the SMC allows the battery to charge.
func (r *Reader) IsChargingEnabled() (bool, error) {
	logrus.Tracef("IsChargingEnabled called")

	v, err := r.Read(ChargingKey1)
	if err != nil {
		return false, err
	}

	ret := len(v.Bytes) == 1 && v.Bytes[0] == 0x0
	logrus.Tracef("IsChargingEnabled returned %t", ret)

	return ret, nil
}
