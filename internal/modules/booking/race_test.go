// README: Concurrency tests for the atomic debit+insert (run with -race).
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"shuttle/internal/modules/fare"
	"shuttle/internal/modules/transit"
	"shuttle/internal/modules/wallet"
	"shuttle/internal/types"
)

func flatRoute() *transit.Route {
	return &transit.Route{
		ID:   "r1",
		Name: "Night Loop",
		Fare: fare.Config{
			Multipliers: fare.Multipliers{Peak: 1.5, OffPeak: 1.0},
		},
	}
}

// TestConcurrentBookings_SameWallet: balance 20, cost 15, two concurrent
// requests. Exactly one must reserve; the other must reject with
// InsufficientBalance and leave no partial state.
func TestConcurrentBookings_SameWallet(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.wallets["u1"] = &wallet.Wallet{ID: "w1", UserID: "u1", Balance: 20}
	store.routes["r1"] = flatRoute()

	svc := NewService(store, nil, nil, nil, 15) // off-peak fare = 15 points
	svc.now = atHour(12)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, studentCommand())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var success, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrInsufficientBalance):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 || insufficient != 1 {
		t.Fatalf("expected 1 success and 1 insufficient, got %d and %d", success, insufficient)
	}
	if got := store.balance("u1"); got != 5 {
		t.Errorf("balance = %d, want 5", got)
	}
	if store.bookingCount() != 1 {
		t.Errorf("booking rows = %d, want 1", store.bookingCount())
	}
}

// TestConcurrentBookings_BalanceConservation: N concurrent requests may only
// ever debit what the booking rows account for.
func TestConcurrentBookings_BalanceConservation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.wallets["u1"] = &wallet.Wallet{ID: "w1", UserID: "u1", Balance: 47}
	store.routes["r1"] = flatRoute()

	svc := NewService(store, nil, nil, nil, 15)
	svc.now = atHour(12)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, studentCommand())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
		} else if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// 47 / 15 = 3 full debits.
	if success != 3 {
		t.Fatalf("expected 3 successes, got %d", success)
	}
	if got := store.balance("u1"); got != 2 {
		t.Errorf("balance = %d, want 2", got)
	}
	if store.bookingCount() != success {
		t.Errorf("booking rows = %d, want %d (one per debit)", store.bookingCount(), success)
	}
}

// TestConcurrentBookings_DifferentWallets must not contend: every request
// with its own funded wallet succeeds.
func TestConcurrentBookings_DifferentWallets(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.routes["r1"] = flatRoute()

	const users = 6
	for i := 0; i < users; i++ {
		uid := fmt.Sprintf("u%d", i)
		store.wallets[types.ID(uid)] = &wallet.Wallet{ID: types.ID("w" + uid), UserID: types.ID(uid), Balance: 15}
	}

	svc := NewService(store, nil, nil, nil, 15)
	svc.now = atHour(12)

	var wg sync.WaitGroup
	errs := make(chan error, users)
	for i := 0; i < users; i++ {
		uid := fmt.Sprintf("u%d", i)
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			cmd := studentCommand()
			cmd.UserID = types.ID(uid)
			_, err := svc.Create(ctx, cmd)
			errs <- err
		}(uid)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if store.bookingCount() != users {
		t.Errorf("booking rows = %d, want %d", store.bookingCount(), users)
	}
}
