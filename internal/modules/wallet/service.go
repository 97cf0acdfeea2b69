// README: Wallet service for balance reads, top-ups, and statements.
// Notification and metrics sinks are fire-and-forget; they never affect the
// ledger outcome.
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"shuttle/internal/types"
)

// Ledger is the persistence boundary for wallet operations.
type Ledger interface {
	GetByUser(ctx context.Context, userID types.ID) (*Wallet, error)
	Credit(ctx context.Context, userID types.ID, amount int64) (int64, error)
	Statement(ctx context.Context, userID types.ID, page, limit int) ([]Transaction, error)
}

// Notifier delivers a user-facing message. Implementations must be safe to
// call from a background goroutine.
type Notifier interface {
	Push(ctx context.Context, userID types.ID, message, kind string) error
}

// Metrics records wallet business events.
type Metrics interface {
	WalletTopUp(ctx context.Context, userID types.ID, amount int64)
	WalletTopUpFailed(ctx context.Context, userID types.ID, amount int64, reason string)
}

type Service struct {
	ledger  Ledger
	notify  Notifier
	metrics Metrics
}

func NewService(ledger Ledger, notify Notifier, metrics Metrics) *Service {
	return &Service{ledger: ledger, notify: notify, metrics: metrics}
}

func (s *Service) Balance(ctx context.Context, userID types.ID) (int64, error) {
	w, err := s.ledger.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// TopUp credits points to the user's wallet and returns the new balance.
func (s *Service) TopUp(ctx context.Context, userID types.ID, points int64) (int64, error) {
	balance, err := s.ledger.Credit(ctx, userID, points)
	if err != nil {
		if s.metrics != nil {
			s.metrics.WalletTopUpFailed(ctx, userID, points, err.Error())
		}
		return 0, err
	}

	go s.emitTopUp(userID, points, balance)
	return balance, nil
}

func (s *Service) Statement(ctx context.Context, userID types.ID, page, limit int) ([]Transaction, error) {
	return s.ledger.Statement(ctx, userID, page, limit)
}

// emitTopUp runs on its own detached context so a slow sink cannot block or
// fail the caller's request.
func (s *Service) emitTopUp(userID types.ID, points, balance int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.metrics != nil {
		s.metrics.WalletTopUp(ctx, userID, points)
	}
	if s.notify != nil {
		msg := fmt.Sprintf("Wallet topped up with %d points. New balance: %d", points, balance)
		if err := s.notify.Push(ctx, userID, msg, "WALLET"); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("top-up notification failed")
		}
	}
}
