// README: Booking aggregate. A booking row exists iff the paired wallet
// debit committed in the same transaction; rows are immutable after
// creation.
package booking

import (
	"time"

	"shuttle/internal/types"
)

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type Booking struct {
	ID             types.ID  `json:"id"`
	UserID         types.ID  `json:"userId"`
	RouteID        types.ID  `json:"routeId"`
	FromStopID     types.ID  `json:"fromStopId"`
	ToStopID       types.ID  `json:"toStopId"`
	ScheduleID     *types.ID `json:"scheduleId,omitempty"`
	FareCharged    float64   `json:"fareCharged"`
	PointsDeducted int64     `json:"pointsDeducted"`
	CreatedAt      time.Time `json:"createdAt"`
}
