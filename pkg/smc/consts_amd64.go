//go:build darwin

package smc

// BatteryChargeKey on Intel Macs. Not verified yet.
const BatteryChargeKey = "BBIF"
