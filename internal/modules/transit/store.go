// README: Transit store backed by PostgreSQL (read-only in the booking core).
package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shuttle/internal/modules/fare"
	"shuttle/internal/types"
)

var ErrNotFound = errors.New("transit: not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetRoute(ctx context.Context, id types.ID) (*Route, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, peak_hours, dynamic_fare
        FROM routes
        WHERE id = $1`, string(id),
	)

	var r Route
	var peakHours, dynamicFare []byte
	err := row.Scan(&r.ID, &r.Name, &peakHours, &dynamicFare)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(peakHours) > 0 {
		if err := json.Unmarshal(peakHours, &r.Fare.PeakWindows); err != nil {
			return nil, fmt.Errorf("route %s: decode peak_hours: %w", r.ID, err)
		}
	}
	if len(dynamicFare) > 0 {
		if err := json.Unmarshal(dynamicFare, &r.Fare.Multipliers); err != nil {
			return nil, fmt.Errorf("route %s: decode dynamic_fare: %w", r.ID, err)
		}
	}
	if r.Fare.Multipliers == (fare.Multipliers{}) {
		// Legacy rows without a configured multiplier pair.
		r.Fare.Multipliers = fare.Multipliers{Peak: 1.5, OffPeak: 1.0}
	}
	return &r, nil
}

func (s *Store) GetStop(ctx context.Context, id types.ID) (*Stop, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, latitude, longitude, route_id
        FROM stops
        WHERE id = $1`, string(id),
	)

	var st Stop
	err := row.Scan(&st.ID, &st.Name, &st.Position.Lat, &st.Position.Lng, &st.RouteID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStops returns a snapshot of every stop, used by the route optimizer.
func (s *Store) ListStops(ctx context.Context) ([]Stop, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, latitude, longitude, route_id
        FROM stops
        ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []Stop
	for rows.Next() {
		var st Stop
		if err := rows.Scan(&st.ID, &st.Name, &st.Position.Lat, &st.Position.Lng, &st.RouteID); err != nil {
			return nil, err
		}
		stops = append(stops, st)
	}
	return stops, rows.Err()
}

func (s *Store) GetSchedule(ctx context.Context, id types.ID) (*Schedule, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, route_id, vehicle_id, departure, arrival
        FROM schedules
        WHERE id = $1`, string(id),
	)

	var sc Schedule
	err := row.Scan(&sc.ID, &sc.RouteID, &sc.VehicleID, &sc.Departure, &sc.Arrival)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}
