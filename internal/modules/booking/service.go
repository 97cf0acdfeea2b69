// README: Booking transaction engine. A request flows
// Received -> Validated -> Priced -> Reserved | Rejected; the debit and the
// booking insert commit together or not at all.
package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shuttle/internal/modules/fare"
	"shuttle/internal/modules/transit"
	"shuttle/internal/modules/wallet"
	"shuttle/internal/types"
)

var (
	ErrUnauthorized        = errors.New("student role required")
	ErrBadRequest          = errors.New("bad request")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrRouteNotFound       = errors.New("route not found")
	ErrInsufficientBalance = wallet.ErrInsufficientBalance
)

// Storage is the persistence collaborator for the engine. DebitAndCreate is
// the atomic unit: it must debit the wallet and insert the booking in one
// transaction, serialized per wallet row, or fail with
// wallet.ErrInsufficientBalance / wallet.ErrNotFound leaving no state behind.
type Storage interface {
	GetWallet(ctx context.Context, userID types.ID) (*wallet.Wallet, error)
	GetRoute(ctx context.Context, routeID types.ID) (*transit.Route, error)
	DebitAndCreate(ctx context.Context, userID types.ID, points int64, b *Booking) error
	ListByUser(ctx context.Context, userID types.ID, page, limit int) ([]Booking, int64, error)
}

// Metrics records booking business events. Implementations swallow their own
// errors; the engine never inspects a result.
type Metrics interface {
	BookingSucceeded(ctx context.Context, userID, routeID types.ID, fareCharged float64, points int64)
	BookingFailed(ctx context.Context, userID, routeID types.ID, reason string)
}

// Notifier delivers a user-facing message.
type Notifier interface {
	Push(ctx context.Context, userID types.ID, message, kind string) error
}

// Auditor records a structured audit event.
type Auditor interface {
	LogUserAction(ctx context.Context, userID types.ID, action, resource string, details map[string]any) error
}

type Service struct {
	store    Storage
	metrics  Metrics
	notify   Notifier
	audit    Auditor
	baseFare float64

	// now is swapped in tests to pin the fare clock.
	now func() time.Time
}

func NewService(store Storage, metrics Metrics, notify Notifier, audit Auditor, baseFare float64) *Service {
	return &Service{
		store:    store,
		metrics:  metrics,
		notify:   notify,
		audit:    audit,
		baseFare: baseFare,
		now:      time.Now,
	}
}

type CreateCommand struct {
	UserID     types.ID
	Role       string
	RouteID    types.ID
	FromStopID types.ID
	ToStopID   types.ID
	ScheduleID *types.ID
}

// Create runs one booking request to its terminal state. It returns the
// persisted booking on success, or exactly one error from the taxonomy:
// ErrUnauthorized, ErrBadRequest, ErrWalletNotFound, ErrRouteNotFound,
// ErrInsufficientBalance, or an internal persistence error.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if cmd.Role != RoleStudent {
		return nil, ErrUnauthorized
	}
	if cmd.UserID == "" || cmd.RouteID == "" || cmd.FromStopID == "" || cmd.ToStopID == "" {
		s.trackFailure(ctx, cmd, "invalid_input")
		return nil, ErrBadRequest
	}

	if _, err := s.store.GetWallet(ctx, cmd.UserID); err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			s.trackFailure(ctx, cmd, "wallet_not_found")
			return nil, ErrWalletNotFound
		}
		s.trackFailure(ctx, cmd, "internal")
		return nil, err
	}

	route, err := s.store.GetRoute(ctx, cmd.RouteID)
	if err != nil {
		if errors.Is(err, transit.ErrNotFound) {
			s.trackFailure(ctx, cmd, "route_not_found")
			return nil, ErrRouteNotFound
		}
		s.trackFailure(ctx, cmd, "internal")
		return nil, err
	}

	now := s.now()
	fareCharged := fare.Calculate(s.baseFare, route.Fare, now)
	points := int64(math.Ceil(fareCharged))

	b := &Booking{
		ID:             types.ID(uuid.NewString()),
		UserID:         cmd.UserID,
		RouteID:        cmd.RouteID,
		FromStopID:     cmd.FromStopID,
		ToStopID:       cmd.ToStopID,
		ScheduleID:     cmd.ScheduleID,
		FareCharged:    fareCharged,
		PointsDeducted: points,
		CreatedAt:      now.UTC(),
	}

	if err := s.store.DebitAndCreate(ctx, cmd.UserID, points, b); err != nil {
		switch {
		case errors.Is(err, wallet.ErrInsufficientBalance):
			s.trackFailure(ctx, cmd, "insufficient_balance")
			return nil, ErrInsufficientBalance
		case errors.Is(err, wallet.ErrNotFound):
			s.trackFailure(ctx, cmd, "wallet_not_found")
			return nil, ErrWalletNotFound
		default:
			s.trackFailure(ctx, cmd, "internal")
			return nil, err
		}
	}

	go s.emitReserved(b, route.Name)
	return b, nil
}

// History lists the user's bookings, newest first, with the total count for
// pagination.
func (s *Service) History(ctx context.Context, userID types.ID, page, limit int) ([]Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.store.ListByUser(ctx, userID, page, limit)
}

func (s *Service) trackFailure(ctx context.Context, cmd CreateCommand, reason string) {
	if s.metrics != nil {
		s.metrics.BookingFailed(ctx, cmd.UserID, cmd.RouteID, reason)
	}
}

// emitReserved fires the success side effects on a detached context. A sink
// failure is logged and dropped; it can never roll back the booking and is
// not retried within the request.
func (s *Service) emitReserved(b *Booking, routeName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.metrics != nil {
		s.metrics.BookingSucceeded(ctx, b.UserID, b.RouteID, b.FareCharged, b.PointsDeducted)
	}
	if s.notify != nil {
		if err := s.notify.Push(ctx, b.UserID, "Booking confirmed for route "+routeName, "BOOKING"); err != nil {
			logrus.WithError(err).WithField("booking_id", b.ID).Warn("booking notification failed")
		}
	}
	if s.audit != nil {
		err := s.audit.LogUserAction(ctx, b.UserID, "BOOKING_CREATED", "booking", map[string]any{
			"bookingId": string(b.ID),
			"routeId":   string(b.RouteID),
			"points":    b.PointsDeducted,
		})
		if err != nil {
			logrus.WithError(err).WithField("booking_id", b.ID).Warn("booking audit failed")
		}
	}
}
