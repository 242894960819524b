package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/clubgate/api/internal/domain"
	"github.com/clubgate/api/internal/testutil"
)

func TestEventRepository_CreateAndGet(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ResetAll(t, ctx, pool)

	repo := NewEventRepository(pool)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	id, err := repo.CreateEvent(ctx, domain.Event{
		MaxQuota:          4,
		EarlyAccessEndsAt: now.Add(time.Hour),
		CreatedAt:         now,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first id 1 after reset, got %d", id)
	}

	e, err := repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if e.MaxQuota != 4 || e.TotalRegistered != 0 || e.Cancelled() {
		t.Fatalf("unexpected event %+v", e)
	}
	if !e.EarlyAccessEndsAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected deadline %v, got %v", now.Add(time.Hour), e.EarlyAccessEndsAt)
	}

	if _, err := repo.GetEvent(ctx, 999); err != domain.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepository_UpdateCounters(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ResetAll(t, ctx, pool)

	repo := NewEventRepository(pool)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	id, err := repo.CreateEvent(ctx, domain.Event{
		MaxQuota:          4,
		EarlyAccessEndsAt: now,
		CreatedAt:         now,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	e, err := repo.GetEventForUpdate(ctx, id)
	if err != nil {
		t.Fatalf("get for update: %v", err)
	}
	e.TotalRegistered = 2
	e.VIPRegistered = 1
	e.OtherRegistered = 1
	cancelledAt := now.Add(2 * time.Hour)
	e.CancelledAt = &cancelledAt
	if err := repo.UpdateEvent(ctx, e); err != nil {
		t.Fatalf("update event: %v", err)
	}

	got, err := repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got.TotalRegistered != 2 || got.VIPRegistered != 1 || got.OtherRegistered != 1 {
		t.Fatalf("unexpected counters %+v", got)
	}
	if !got.Cancelled() {
		t.Fatalf("expected cancelled event")
	}
}

func TestEventRepository_Registrations(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ResetAll(t, ctx, pool)
	testutil.InsertMembership(t, ctx, pool, "alice", "vip", "active", 0)

	repo := NewEventRepository(pool)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	id, err := repo.CreateEvent(ctx, domain.Event{
		MaxQuota:          4,
		EarlyAccessEndsAt: now,
		CreatedAt:         now,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	ok, err := repo.HasRegistration(ctx, id, "alice")
	if err != nil || ok {
		t.Fatalf("expected no registration yet, got ok=%v err=%v", ok, err)
	}
	if err := repo.AddRegistration(ctx, id, "alice", now); err != nil {
		t.Fatalf("add registration: %v", err)
	}
	ok, err = repo.HasRegistration(ctx, id, "alice")
	if err != nil || !ok {
		t.Fatalf("expected registration present, got ok=%v err=%v", ok, err)
	}

	// The primary key maps duplicates to the domain error.
	if err := repo.AddRegistration(ctx, id, "alice", now); err != domain.ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	// Membership reads flow through the memberships repository.
	m, err := repo.GetMembership(ctx, "alice")
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if m == nil || !m.Active() || m.Tier != domain.TierVIP {
		t.Fatalf("unexpected membership %+v", m)
	}
}
