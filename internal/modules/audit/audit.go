// README: Audit trail persisted to PostgreSQL with structured JSONB details.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"shuttle/internal/types"
)

type Event struct {
	ID        types.ID
	ActorID   types.ID
	Action    string
	Resource  string
	Details   map[string]any
	CreatedAt time.Time
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LogUserAction appends one audit event. Callers treat this as
// fire-and-forget; failures surface as an error for the caller to log.
func (s *Store) LogUserAction(ctx context.Context, userID types.ID, action, resource string, details map[string]any) error {
	var payload []byte
	if details != nil {
		var err error
		payload, err = json.Marshal(details)
		if err != nil {
			return err
		}
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO audit_events (id, actor_id, action, resource, details, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), string(userID), action, resource, payload, time.Now().UTC(),
	)
	return err
}

// ListByActor returns recent events for one actor, newest first.
func (s *Store) ListByActor(ctx context.Context, actorID types.ID, limit int) ([]Event, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
        SELECT id, actor_id, action, resource, details, created_at
        FROM audit_events
        WHERE actor_id = $1
        ORDER BY created_at DESC
        LIMIT $2`, string(actorID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var payload []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Resource, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Details); err != nil {
				return nil, err
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
