// README: Notification service. Push satisfies the Notifier interfaces of
// the booking and wallet modules.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"shuttle/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Push persists the notification and fans it out to subscribers. The Redis
// publish is best-effort only.
func (s *Service) Push(ctx context.Context, userID types.ID, message, kind string) error {
	n := &Notification{UserID: userID, Message: message, Kind: kind}
	if err := s.store.Append(ctx, n); err != nil {
		return err
	}
	if err := s.store.Publish(ctx, userID, message); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Debug("notification publish failed")
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID types.ID, unreadOnly bool) ([]Notification, error) {
	return s.store.ListByUser(ctx, userID, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, userID, id types.ID) error {
	return s.store.MarkRead(ctx, userID, id)
}
