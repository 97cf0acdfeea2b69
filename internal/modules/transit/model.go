// README: Shared read model for routes, stops, and schedules. This data is
// configured by admin tooling elsewhere; the booking core only reads it.
package transit

import (
	"time"

	"shuttle/internal/modules/fare"
	"shuttle/internal/types"
)

type Route struct {
	ID   types.ID
	Name string
	Fare fare.Config
}

// Stop belongs to exactly one route.
type Stop struct {
	ID       types.ID
	Name     string
	Position types.Point
	RouteID  types.ID
}

type Schedule struct {
	ID        types.ID
	RouteID   types.ID
	VehicleID types.ID
	Departure time.Time
	Arrival   time.Time
}
