package postgres

import (
	"context"
	"fmt"

	"github.com/clubgate/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipRepository struct {
	pool  *pgxpool.Pool
	roles *AdminRepository
}

func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool, roles: NewAdminRepository(pool)}
}

func (r *MembershipRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *MembershipRepository) GetFee(ctx context.Context, tier domain.Tier) (int64, error) {
	return r.roles.GetFee(ctx, tier)
}

func (r *MembershipRepository) IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error) {
	return r.roles.IsAdmin(ctx, role, identity)
}

const membershipColumns = `member_id, tier, status, escrow_amount, applied_at, resolved_at, expires_at`

func (r *MembershipRepository) GetMembershipForUpdate(ctx context.Context, memberID string) (*domain.Membership, error) {
	const query = `SELECT ` + membershipColumns + ` FROM memberships WHERE member_id = $1 FOR UPDATE`
	return r.scanMembership(queryRow(ctx, r.pool, query, memberID))
}

func (r *MembershipRepository) GetMembership(ctx context.Context, memberID string) (*domain.Membership, error) {
	const query = `SELECT ` + membershipColumns + ` FROM memberships WHERE member_id = $1`
	return r.scanMembership(queryRow(ctx, r.pool, query, memberID))
}

func (r *MembershipRepository) scanMembership(row pgx.Row) (*domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.MemberID, &m.Tier, &m.Status, &m.EscrowAmount, &m.AppliedAt, &m.ResolvedAt, &m.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

func (r *MembershipRepository) SaveMembership(ctx context.Context, m domain.Membership) error {
	const stmt = `
INSERT INTO memberships (member_id, tier, status, escrow_amount, applied_at, resolved_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (member_id) DO UPDATE SET
	tier = EXCLUDED.tier,
	status = EXCLUDED.status,
	escrow_amount = EXCLUDED.escrow_amount,
	applied_at = EXCLUDED.applied_at,
	resolved_at = EXCLUDED.resolved_at,
	expires_at = EXCLUDED.expires_at,
	updated_at = NOW()`
	err := exec(ctx, r.pool, stmt, m.MemberID, m.Tier, m.Status, m.EscrowAmount, m.AppliedAt, m.ResolvedAt, m.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save membership: %w", err)
	}
	return nil
}
