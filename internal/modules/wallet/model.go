// README: Wallet aggregate with pure balance transitions. The balance can
// never go negative; the transition functions enforce that, not the caller.
package wallet

import (
	"errors"
	"time"

	"shuttle/internal/types"
)

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotFound            = errors.New("wallet not found")
)

// Wallet holds a user's point balance. One wallet per user; created with
// balance 0 at registration and mutated only through credit/debit.
type Wallet struct {
	ID      types.ID
	UserID  types.ID
	Balance int64
}

// Credited returns the wallet after a credit of amount points.
func (w Wallet) Credited(amount int64) (Wallet, error) {
	if amount <= 0 {
		return w, ErrInvalidAmount
	}
	w.Balance += amount
	return w, nil
}

// Debited returns the wallet after a debit of amount points. It fails with
// ErrInsufficientBalance rather than ever producing a negative balance.
func (w Wallet) Debited(amount int64) (Wallet, error) {
	if amount <= 0 {
		return w, ErrInvalidAmount
	}
	if amount > w.Balance {
		return w, ErrInsufficientBalance
	}
	w.Balance -= amount
	return w, nil
}

type TransactionKind string

const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
)

// Transaction is one ledger entry on a wallet. BookingID is set for debits
// made by the booking engine.
type Transaction struct {
	ID        types.ID
	WalletID  types.ID
	Kind      TransactionKind
	Amount    int64
	BookingID *types.ID
	CreatedAt time.Time
}
