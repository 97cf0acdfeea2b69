// README: Wallet store backed by PostgreSQL. Balance changes use
// conditional UPDATEs so concurrent requests against the same wallet row
// serialize in the database, and every change writes a ledger entry in the
// same transaction.
package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shuttle/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetByUser(ctx context.Context, userID types.ID) (*Wallet, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, user_id, balance
        FROM wallets
        WHERE user_id = $1`, string(userID),
	)

	var w Wallet
	err := row.Scan(&w.ID, &w.UserID, &w.Balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Credit adds amount points to the user's wallet and returns the new
// balance. Amount validation happens in the pure model before any I/O.
func (s *Store) Credit(ctx context.Context, userID types.ID, amount int64) (int64, error) {
	if _, err := (Wallet{}).Credited(amount); err != nil {
		return 0, err
	}

	var balance int64
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
            UPDATE wallets
            SET balance = balance + $1
            WHERE user_id = $2
            RETURNING id, balance`, amount, string(userID),
		)
		var walletID string
		if err := row.Scan(&walletID, &balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return appendTransaction(ctx, tx, walletID, KindCredit, amount, nil)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Debit removes amount points from the user's wallet. The conditional
// UPDATE both serializes concurrent debits on the wallet row and rejects
// any debit that would drive the balance negative.
func (s *Store) Debit(ctx context.Context, userID types.ID, amount int64) (int64, error) {
	if _, err := (Wallet{Balance: amount}).Debited(amount); err != nil {
		return 0, err
	}

	var balance int64
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
            UPDATE wallets
            SET balance = balance - $1
            WHERE user_id = $2 AND balance >= $1
            RETURNING id, balance`, amount, string(userID),
		)
		var walletID string
		if err := row.Scan(&walletID, &balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return s.classifyDebitFailure(ctx, tx, userID)
			}
			return err
		}
		return appendTransaction(ctx, tx, walletID, KindDebit, amount, nil)
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// classifyDebitFailure distinguishes a missing wallet from an insufficient
// balance after the conditional UPDATE matched no row.
func (s *Store) classifyDebitFailure(ctx context.Context, tx pgx.Tx, userID types.ID) error {
	var exists bool
	if err := tx.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1)`, string(userID),
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInsufficientBalance
}

// Statement lists the user's ledger entries, newest first.
func (s *Store) Statement(ctx context.Context, userID types.ID, page, limit int) ([]Transaction, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, `
        SELECT t.id, t.wallet_id, t.kind, t.amount, t.booking_id, t.created_at
        FROM wallet_transactions t
        JOIN wallets w ON w.id = t.wallet_id
        WHERE w.user_id = $1
        ORDER BY t.created_at DESC
        LIMIT $2 OFFSET $3`,
		string(userID), limit, (page-1)*limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		var bookingID *string
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Kind, &t.Amount, &bookingID, &t.CreatedAt); err != nil {
			return nil, err
		}
		if bookingID != nil {
			id := types.ID(*bookingID)
			t.BookingID = &id
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func appendTransaction(ctx context.Context, tx pgx.Tx, walletID string, kind TransactionKind, amount int64, bookingID *string) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO wallet_transactions (id, wallet_id, kind, amount, booking_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), walletID, string(kind), amount, bookingID, time.Now().UTC(),
	)
	return err
}
