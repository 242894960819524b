package payments

import (
	"context"
	"sync"
	"testing"
)

func TestLedger_Transfer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger()

	if err := ledger.Transfer(ctx, "alice", 3); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := ledger.Transfer(ctx, "alice", 2); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := ledger.Balance("alice"); got != 5 {
		t.Fatalf("expected balance 5, got %d", got)
	}
	if got := ledger.Balance("bob"); got != 0 {
		t.Fatalf("expected empty account balance 0, got %d", got)
	}

	if err := ledger.Transfer(ctx, "alice", -1); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if got := ledger.Balance("alice"); got != 5 {
		t.Fatalf("failed transfer must not move the balance, got %d", got)
	}
}

func TestLedger_ConcurrentTransfers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := NewLedger()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ledger.Transfer(ctx, "shared", 1)
		}()
	}
	wg.Wait()

	if got := ledger.Balance("shared"); got != 50 {
		t.Fatalf("expected balance 50, got %d", got)
	}
}
