// README: Booking store backed by PostgreSQL. DebitAndCreate is the atomic
// debit+insert: the conditional UPDATE on the wallet row serializes
// concurrent bookings per wallet, and the booking plus its ledger entry
// commit in the same transaction or not at all.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shuttle/internal/modules/transit"
	"shuttle/internal/modules/wallet"
	"shuttle/internal/types"
)

type Store struct {
	db      *pgxpool.Pool
	transit *transit.Store
	wallets *wallet.Store
}

func NewStore(db *pgxpool.Pool, transitStore *transit.Store, walletStore *wallet.Store) *Store {
	return &Store{db: db, transit: transitStore, wallets: walletStore}
}

func (s *Store) GetWallet(ctx context.Context, userID types.ID) (*wallet.Wallet, error) {
	return s.wallets.GetByUser(ctx, userID)
}

func (s *Store) GetRoute(ctx context.Context, routeID types.ID) (*transit.Route, error) {
	return s.transit.GetRoute(ctx, routeID)
}

func (s *Store) DebitAndCreate(ctx context.Context, userID types.ID, points int64, b *Booking) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
            UPDATE wallets
            SET balance = balance - $1
            WHERE user_id = $2 AND balance >= $1
            RETURNING id`, points, string(userID),
		)
		var walletID string
		if err := row.Scan(&walletID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return s.classifyDebitFailure(ctx, tx, userID)
			}
			return err
		}

		var scheduleID *string
		if b.ScheduleID != nil {
			v := string(*b.ScheduleID)
			scheduleID = &v
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO bookings (
                id, user_id, route_id, from_stop_id, to_stop_id, schedule_id,
                fare_charged, points_deducted, created_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			string(b.ID),
			string(b.UserID),
			string(b.RouteID),
			string(b.FromStopID),
			string(b.ToStopID),
			scheduleID,
			b.FareCharged,
			b.PointsDeducted,
			b.CreatedAt,
		)
		if err != nil {
			return err
		}

		bookingID := string(b.ID)
		_, err = tx.Exec(ctx, `
            INSERT INTO wallet_transactions (id, wallet_id, kind, amount, booking_id, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), walletID, string(wallet.KindDebit), points, &bookingID, time.Now().UTC(),
		)
		return err
	})
}

func (s *Store) classifyDebitFailure(ctx context.Context, tx pgx.Tx, userID types.ID) error {
	var exists bool
	if err := tx.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1)`, string(userID),
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return wallet.ErrNotFound
	}
	return wallet.ErrInsufficientBalance
}

func (s *Store) ListByUser(ctx context.Context, userID types.ID, page, limit int) ([]Booking, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM bookings WHERE user_id = $1`, string(userID),
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx, `
        SELECT id, user_id, route_id, from_stop_id, to_stop_id, schedule_id,
               fare_charged, points_deducted, created_at
        FROM bookings
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`,
		string(userID), limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		var scheduleID *string
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.RouteID, &b.FromStopID, &b.ToStopID, &scheduleID,
			&b.FareCharged, &b.PointsDeducted, &b.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		if scheduleID != nil {
			id := types.ID(*scheduleID)
			b.ScheduleID = &id
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}
