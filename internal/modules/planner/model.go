// README: Trip planning results over the stop graph.
package planner

import "shuttle/internal/modules/transit"

// Direct is an itinerary where both stops share a route.
type Direct struct {
	RouteID      string  `json:"routeId"`
	DistanceKm   float64 `json:"distance"`
	EstimatedMin int     `json:"estimatedTime"`
}

// TransferOption is a proposed itinerary via one intermediate stop on a
// third route.
type TransferOption struct {
	TransferStop transit.Stop `json:"transferStop"`
	TotalKm      float64      `json:"totalDistance"`
	EstimatedMin int          `json:"estimatedTime"`
}

// Plan is the tagged planning result: exactly one of Direct or Transfers
// is populated. An empty Transfers slice with a nil Direct means no
// itinerary could be proposed; that is a normal outcome, not an error.
type Plan struct {
	Direct    *Direct
	Transfers []TransferOption
}
