package powerinfo

import (
	"fmt"
	"strings"
)

// UnknownValue marks Seconds or Percent as unavailable.
const UnknownValue = -1

// State describes the overall power situation of the system.
type State int

const (
	// Unknown means the platform is unsupported or reported nothing.
	Unknown State = iota
	// NoBattery means power sources were reported but none is a battery.
	NoBattery
	// Charging indicates the battery is charging.
	Charging
	// Charged indicates the system is on AC and the battery is not charging.
	Charged
	// OnBattery indicates the system is running from its battery.
	OnBattery
)

var stateNames = [...]string{"unknown", "noBattery", "charging", "charged", "onBattery"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return stateNames[Unknown]
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if strings.EqualFold(string(b), name) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("invalid power state %q", string(b))
}

// PowerInfo is the normalized summary of all power sources.
//
// When State is Unknown the value is always the zero PowerInfo and Seconds
// and Percent carry no meaning. For every other state UnknownValue (-1) marks
// a field as unavailable.
type PowerInfo struct {
	State State `json:"state"`
	// Seconds until the battery is empty, or until full while charging.
	Seconds int `json:"seconds"`
	// Percent of charge remaining, 0-100.
	Percent int `json:"percent"`
}

// HasSeconds reports whether Seconds holds a real estimate.
func (p PowerInfo) HasSeconds() bool {
	return p.State != Unknown && p.Seconds > UnknownValue
}

// HasPercent reports whether Percent holds a real estimate.
func (p PowerInfo) HasPercent() bool {
	return p.State != Unknown && p.Percent > UnknownValue
}

// Kind is the type of a power source.
type Kind int

const (
	KindOther Kind = iota
	KindAC
	KindBattery
)

var kindNames = [...]string{"other", "ac", "battery"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindOther]
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if strings.EqualFold(string(b), name) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("invalid power source kind %q", string(b))
}

// PowerSource is one battery or AC adapter as reported by the OS.
// Optional values are nil when the OS did not report them.
// Capacity units are whatever the backend uses; only their ratio matters.
type PowerSource struct {
	Name               string `json:"name,omitempty"`
	Present            bool   `json:"present"`
	Kind               Kind   `json:"kind"`
	Charging           bool   `json:"charging"`
	MaxCapacity        *int   `json:"maxCapacity,omitempty"`
	CurrentCapacity    *int   `json:"currentCapacity,omitempty"`
	TimeToEmptyMinutes *int   `json:"timeToEmptyMinutes,omitempty"`
}

// Int returns a pointer to i, for filling optional PowerSource fields.
func Int(i int) *int {
	return &i
}
