//go:build darwin

package smc

// SMC keys read by this package.
const (
	ACPowerKey   = "AC-W"
	ChargingKey1 = "CH0B"
)
