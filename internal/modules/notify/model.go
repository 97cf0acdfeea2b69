// README: User notifications persisted per user, replacing any in-process
// notification state so multiple instances stay consistent.
package notify

import (
	"time"

	"shuttle/internal/types"
)

const (
	KindBooking = "BOOKING"
	KindWallet  = "WALLET"
	KindSystem  = "SYSTEM"
)

type Notification struct {
	ID        types.ID  `json:"id"`
	UserID    types.ID  `json:"userId"`
	Message   string    `json:"message"`
	Kind      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
