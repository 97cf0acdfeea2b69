// README: Peak-hour fare calculation. Pure and deterministic for a given
// (baseFare, config, hour) triple.
package fare

import "time"

// IsPeakHour reports whether the hour falls inside any configured window.
// With no windows every hour is off-peak.
func IsPeakHour(windows []PeakWindow, hour int) bool {
	for _, w := range windows {
		if hour >= w.Start && hour <= w.End {
			return true
		}
	}
	return false
}

// Calculate returns the fare for a base rate at the given booking time,
// using the local hour-of-day of at.
func Calculate(baseFare float64, cfg Config, at time.Time) float64 {
	if IsPeakHour(cfg.PeakWindows, at.Hour()) {
		return baseFare * cfg.Multipliers.Peak
	}
	return baseFare * cfg.Multipliers.OffPeak
}
