// README: Planner service loads stop snapshots and runs the optimizer.
// Read-only; it shares the transit data model with the booking engine but
// never sits on the booking write path.
package planner

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"shuttle/internal/modules/transit"
	"shuttle/internal/types"
)

var (
	ErrBadRequest   = errors.New("missing stop id")
	ErrStopNotFound = errors.New("stop not found")
)

// StopSource supplies the stop snapshot for an optimization request.
type StopSource interface {
	GetStop(ctx context.Context, id types.ID) (*transit.Stop, error)
	ListStops(ctx context.Context) ([]transit.Stop, error)
}

// TravelEstimator refines the heuristic travel-time estimate for direct
// itineraries. Optional; failures fall back to the heuristic.
type TravelEstimator interface {
	EstimateMinutes(ctx context.Context, from, to types.Point) (int, error)
}

type Service struct {
	stops     StopSource
	estimator TravelEstimator
}

func NewService(stops StopSource, estimator TravelEstimator) *Service {
	return &Service{stops: stops, estimator: estimator}
}

// Plan finds a direct itinerary between the two stops or, failing that,
// ranked single-hop transfer options. Absence of any itinerary is reported
// through an empty Plan, never an error.
func (s *Service) Plan(ctx context.Context, fromID, toID types.ID) (Plan, error) {
	if fromID == "" || toID == "" {
		return Plan{}, ErrBadRequest
	}

	from, err := s.getStop(ctx, fromID)
	if err != nil {
		return Plan{}, err
	}
	to, err := s.getStop(ctx, toID)
	if err != nil {
		return Plan{}, err
	}

	if direct, ok := FindDirect(*from, *to); ok {
		s.refineEstimate(ctx, from.Position, to.Position, &direct)
		return Plan{Direct: &direct}, nil
	}

	snapshot, err := s.stops.ListStops(ctx)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Transfers: FindTransfers(snapshot, *from, *to)}, nil
}

func (s *Service) getStop(ctx context.Context, id types.ID) (*transit.Stop, error) {
	st, err := s.stops.GetStop(ctx, id)
	if errors.Is(err, transit.ErrNotFound) {
		return nil, ErrStopNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) refineEstimate(ctx context.Context, from, to types.Point, d *Direct) {
	if s.estimator == nil {
		return
	}
	min, err := s.estimator.EstimateMinutes(ctx, from, to)
	if err != nil {
		logrus.WithError(err).Debug("travel estimator unavailable, keeping heuristic")
		return
	}
	d.EstimatedMin = min
}
