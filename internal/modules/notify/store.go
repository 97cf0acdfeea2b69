// README: Notification store backed by PostgreSQL, with a Redis publish for
// connected clients.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"shuttle/internal/types"
)

var ErrNotFound = errors.New("notification not found")

const channelPrefix = "notify:user:"

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

func (s *Store) Append(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = types.ID(uuid.NewString())
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO notifications (id, user_id, message, kind, read, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		string(n.ID), string(n.UserID), n.Message, n.Kind, n.Read, n.CreatedAt,
	)
	return err
}

// Publish pushes the message to the user's Redis channel. Best-effort; a
// subscriber that missed it still sees the persisted row.
func (s *Store) Publish(ctx context.Context, userID types.ID, message string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Publish(ctx, channelPrefix+string(userID), message).Err()
}

func (s *Store) ListByUser(ctx context.Context, userID types.ID, unreadOnly bool) ([]Notification, error) {
	query := `
        SELECT id, user_id, message, kind, read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC`
	if unreadOnly {
		query = `
        SELECT id, user_id, message, kind, read, created_at
        FROM notifications
        WHERE user_id = $1 AND read = FALSE
        ORDER BY created_at DESC`
	}

	rows, err := s.db.Query(ctx, query, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Kind, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the read flag. Scoped to the owning user so one user
// cannot acknowledge another's notifications.
func (s *Store) MarkRead(ctx context.Context, userID, id types.ID) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE notifications SET read = TRUE
        WHERE id = $1 AND user_id = $2`, string(id), string(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
