package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubgate/api/internal/domain"
)

func TestStore_SeedsDefaultFees(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	for tier, want := range domain.DefaultFees() {
		got, err := store.GetFee(ctx, tier)
		if err != nil {
			t.Fatalf("get fee %s: %v", tier, err)
		}
		if got != want {
			t.Fatalf("fee for %s: expected %d, got %d", tier, want, got)
		}
	}
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(txCtx context.Context) error {
		if err := store.SetAdmin(txCtx, domain.RoleEventAdmin, "admin", true); err != nil {
			return err
		}
		if err := store.SetFee(txCtx, domain.TierGold, 99); err != nil {
			return err
		}
		if _, err := store.CreateEvent(txCtx, domain.Event{MaxQuota: 5}); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("expected the closure error back, got %v", err)
	}

	if ok, _ := store.IsAdmin(ctx, domain.RoleEventAdmin, "admin"); ok {
		t.Fatalf("role grant must be rolled back")
	}
	if fee, _ := store.GetFee(ctx, domain.TierGold); fee != 2 {
		t.Fatalf("fee must be rolled back to 2, got %d", fee)
	}
	if _, err := store.GetEvent(ctx, 1); err != domain.ErrEventNotFound {
		t.Fatalf("event must be rolled back, got %v", err)
	}

	// The id sequence rolls back too, so the next commit reuses id 1.
	id, err := store.CreateEvent(ctx, domain.Event{MaxQuota: 5})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1 after rollback, got %d", id)
	}
}

func TestStore_WithTxCommits(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	err := store.WithTx(ctx, func(txCtx context.Context) error {
		return store.SaveMembership(txCtx, domain.Membership{
			MemberID: "alice",
			Tier:     domain.TierVIP,
			Status:   domain.MembershipStatusActive,
		})
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}

	m, err := store.GetMembership(ctx, "alice")
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if m == nil || m.Tier != domain.TierVIP {
		t.Fatalf("expected committed membership, got %+v", m)
	}
}

func TestStore_WithTxNests(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	err := store.WithTx(ctx, func(txCtx context.Context) error {
		return store.WithTx(txCtx, func(innerCtx context.Context) error {
			return store.SetFee(innerCtx, domain.TierRegular, 7)
		})
	})
	if err != nil {
		t.Fatalf("nested tx: %v", err)
	}

	if fee, _ := store.GetFee(ctx, domain.TierRegular); fee != 7 {
		t.Fatalf("expected committed fee 7, got %d", fee)
	}
}

func TestStore_GetMembershipReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	if err := store.SaveMembership(ctx, domain.Membership{
		MemberID: "alice",
		Tier:     domain.TierGold,
		Status:   domain.MembershipStatusPending,
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	m, err := store.GetMembership(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	m.Status = domain.MembershipStatusActive

	again, err := store.GetMembership(ctx, "alice")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Status != domain.MembershipStatusPending {
		t.Fatalf("mutating the returned record must not touch the store")
	}
}

func TestStore_Registrations(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	id, err := store.CreateEvent(ctx, domain.Event{MaxQuota: 2})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if ok, _ := store.HasRegistration(ctx, id, "alice"); ok {
		t.Fatalf("expected no registration yet")
	}
	if err := store.AddRegistration(ctx, id, "alice", at); err != nil {
		t.Fatalf("add registration: %v", err)
	}
	if ok, _ := store.HasRegistration(ctx, id, "alice"); !ok {
		t.Fatalf("expected registration present")
	}
	if err := store.AddRegistration(ctx, id, "alice", at); err != domain.ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	// Same member, different event is fine.
	other, err := store.CreateEvent(ctx, domain.Event{MaxQuota: 2})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if err := store.AddRegistration(ctx, other, "alice", at); err != nil {
		t.Fatalf("add registration to second event: %v", err)
	}
}
