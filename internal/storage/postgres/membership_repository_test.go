package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/clubgate/api/internal/domain"
	"github.com/clubgate/api/internal/testutil"
)

func TestMembershipRepository_SaveAndGet(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ResetAll(t, ctx, pool)

	repo := NewMembershipRepository(pool)
	appliedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	m, err := repo.GetMembership(ctx, "alice")
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if m != nil {
		t.Fatalf("expected no record, got %+v", m)
	}

	pending := domain.Membership{
		MemberID:     "alice",
		Tier:         domain.TierGold,
		Status:       domain.MembershipStatusPending,
		EscrowAmount: 2,
		AppliedAt:    appliedAt,
	}
	if err := repo.SaveMembership(ctx, pending); err != nil {
		t.Fatalf("save membership: %v", err)
	}

	m, err = repo.GetMembership(ctx, "alice")
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if m == nil || !m.Pending() || m.EscrowAmount != 2 || m.Tier != domain.TierGold {
		t.Fatalf("unexpected record %+v", m)
	}
	if m.ResolvedAt != nil || m.ExpiresAt != nil {
		t.Fatalf("pending record must carry no resolution times, got %+v", m)
	}

	// Saving again upserts the same row.
	resolvedAt := appliedAt.Add(time.Hour)
	expiresAt := resolvedAt.AddDate(0, 1, 0)
	active := pending
	active.Status = domain.MembershipStatusActive
	active.ResolvedAt = &resolvedAt
	active.ExpiresAt = &expiresAt
	if err := repo.SaveMembership(ctx, active); err != nil {
		t.Fatalf("save active: %v", err)
	}

	m, err = repo.GetMembershipForUpdate(ctx, "alice")
	if err != nil {
		t.Fatalf("get for update: %v", err)
	}
	if !m.Active() {
		t.Fatalf("expected active record, got %+v", m)
	}
	if m.ExpiresAt == nil || !m.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("expected expiry %v, got %v", expiresAt, m.ExpiresAt)
	}
}

func TestMembershipRepository_DelegatesRolesAndFees(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ResetAll(t, ctx, pool)
	testutil.GrantRole(t, ctx, pool, "membership_admin", "admin")

	repo := NewMembershipRepository(pool)

	ok, err := repo.IsAdmin(ctx, domain.RoleMembershipAdmin, "admin")
	if err != nil || !ok {
		t.Fatalf("expected granted role visible, got ok=%v err=%v", ok, err)
	}
	fee, err := repo.GetFee(ctx, domain.TierRegular)
	if err != nil {
		t.Fatalf("get fee: %v", err)
	}
	if fee != 1 {
		t.Fatalf("expected seeded regular fee 1, got %d", fee)
	}
}
