//go:build darwin

package smc

// BatteryChargeKey holds the charge percentage on Apple Silicon.
const BatteryChargeKey = "BUIC"
