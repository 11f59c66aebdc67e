package powerinfo

import "math"

// accumulator is threaded through Query while folding over the sources.
type accumulator struct {
	haveAC      bool
	haveBattery bool
	charging    bool
	seconds     int
	percent     int
}

func newAccumulator() accumulator {
	return accumulator{
		seconds: UnknownValue,
		percent: UnknownValue,
	}
}

// Query reconciles the given power sources into one PowerInfo.
//
// The source claiming the most time remaining wins. When neither it nor the
// current best report a time, the higher percentage wins instead.
func Query(sources []PowerSource) PowerInfo {
	if len(sources) == 0 {
		return PowerInfo{}
	}

	acc := newAccumulator()
	for _, src := range sources {
		acc = acc.add(src)
	}

	return acc.result()
}

func (a accumulator) add(src PowerSource) accumulator {
	if !src.Present {
		return a
	}

	isAC := false
	switch src.Kind {
	case KindAC:
		// An AC source may also describe the battery it is charging, so
		// keep going.
		isAC = true
		a.haveAC = true
	case KindBattery:
	default:
		return a
	}

	maxCap := UnknownValue
	if src.MaxCapacity != nil && *src.MaxCapacity > 0 {
		a.haveBattery = true
		maxCap = *src.MaxCapacity
	}

	secs := UnknownValue
	if src.TimeToEmptyMinutes != nil {
		minutes := *src.TimeToEmptyMinutes
		switch {
		case minutes == 0 && isAC:
			// Reported as 0 while plugged in, which is not an estimate.
		case minutes > 0:
			secs = minutes * 60
		case minutes == 0:
			secs = 0
		}
	}

	pct := UnknownValue
	if src.CurrentCapacity != nil && *src.CurrentCapacity >= 0 {
		pct = *src.CurrentCapacity
	}
	if pct > 0 && maxCap > 0 {
		pct = int(math.Round(float64(pct) / float64(maxCap) * 100))
	}
	if pct > 100 {
		pct = 100
	}

	choose := false
	if secs == UnknownValue && a.seconds == UnknownValue {
		if pct == UnknownValue && a.percent == UnknownValue {
			// At least we know there is a source.
			choose = true
		}
		if pct > a.percent {
			choose = true
		}
	} else if secs > a.seconds {
		choose = true
	}

	if choose {
		a.seconds = secs
		a.percent = pct
		a.charging = src.Charging
	}

	return a
}

func (a accumulator) result() PowerInfo {
	info := PowerInfo{
		Seconds: a.seconds,
		Percent: a.percent,
	}

	switch {
	case !a.haveBattery:
		info.State = NoBattery
	case a.charging:
		info.State = Charging
	case a.haveAC:
		info.State = Charged
	default:
		info.State = OnBattery
	}

	return info
}
