// README: Dynamic fare configuration carried by each route.
package fare

// PeakWindow is an hour-of-day interval, inclusive on both ends.
// Windows may overlap or appear out of order; each one is checked
// independently.
type PeakWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Multipliers holds the peak / off-peak fare factors for a route.
// Both must be positive; 1.0 means no markup or discount. Validation
// happens at the route-creation boundary, not here.
type Multipliers struct {
	Peak    float64 `json:"peak"`
	OffPeak float64 `json:"offPeak"`
}

// Config is a route's dynamic-fare configuration as stored in the
// routes table (peak_hours and dynamic_fare JSONB columns).
type Config struct {
	PeakWindows []PeakWindow `json:"peakHours"`
	Multipliers Multipliers  `json:"dynamicFare"`
}
