// README: Pure route-optimization functions. Transfer search is single-hop:
// one intermediate route, ranked by a greedy nearest-transfer heuristic
// rather than a full shortest-path search across the stop graph.
package planner

import (
	"math"

	"shuttle/internal/modules/geo"
	"shuttle/internal/modules/transit"
)

const (
	// directEstimateMin is the fallback travel-time estimate for a direct
	// itinerary when no external estimator is configured.
	directEstimateMin = 15
	// maxTransferOptions caps how many ranked transfer candidates are
	// returned.
	maxTransferOptions = 3
	// minutesPerKm converts detour distance into a coarse travel-time
	// estimate. Monotonic in distance.
	minutesPerKm = 3
)

// FindDirect returns a direct itinerary when both stops belong to the same
// route. ok is false when they do not; callers fall back to transfer search.
func FindDirect(from, to transit.Stop) (Direct, bool) {
	if from.RouteID != to.RouteID {
		return Direct{}, false
	}
	return Direct{
		RouteID:      string(from.RouteID),
		DistanceKm:   geo.HaversineKm(from.Position, to.Position),
		EstimatedMin: directEstimateMin,
	}, true
}

// FindTransfers ranks candidate transfer stops for a (from, to) pair with no
// direct route. Candidates are stops on a route different from both
// endpoints; they are ordered ascending by combined detour distance
// dist(from, candidate) + dist(candidate, to).
func FindTransfers(stops []transit.Stop, from, to transit.Stop) []TransferOption {
	options := make([]TransferOption, 0, len(stops))
	for _, s := range stops {
		if s.RouteID == from.RouteID || s.RouteID == to.RouteID {
			continue
		}
		total := geo.HaversineKm(from.Position, s.Position) + geo.HaversineKm(s.Position, to.Position)
		options = append(options, TransferOption{
			TransferStop: s,
			TotalKm:      total,
			EstimatedMin: estimateMinutes(total),
		})
	}

	geo.SortByDistance(options, func(o TransferOption) float64 { return o.TotalKm })
	if len(options) > maxTransferOptions {
		options = options[:maxTransferOptions]
	}
	return options
}

func estimateMinutes(distanceKm float64) int {
	return int(math.Ceil(distanceKm * minutesPerKm))
}
