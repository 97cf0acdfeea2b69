// README: Google Maps directions wrapper used to refine shuttle travel
// estimates. Optional; the planner falls back to its distance heuristic
// when no API key is configured or the API call fails.
package maps

import (
	"context"
	"fmt"
	"math"

	"googlemaps.github.io/maps"

	"shuttle/internal/types"
)

// ETAService answers travel-time questions via the Directions API.
type ETAService struct {
	client *maps.Client
}

// NewETAService creates an ETAService with the given API key.
func NewETAService(apiKey string) (*ETAService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &ETAService{client: client}, nil
}

// EstimateMinutes returns the driving time between two points, rounded up
// to whole minutes.
func (s *ETAService) EstimateMinutes(ctx context.Context, from, to types.Point) (int, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", from.Lat, from.Lng),
		Destination: fmt.Sprintf("%f,%f", to.Lat, to.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return int(math.Ceil(leg.Duration.Minutes())), nil
}
