package postgres

import (
	"context"
	"fmt"

	"github.com/clubgate/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AdminRepository) GetAdminForUpdate(ctx context.Context, role domain.Role, identity string) (bool, error) {
	const query = `SELECT active FROM admin_roles WHERE role = $1 AND identity = $2 FOR UPDATE`
	var active bool
	err := queryRow(ctx, r.pool, query, role, identity).Scan(&active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("get admin role: %w", err)
	}
	return active, nil
}

func (r *AdminRepository) SetAdmin(ctx context.Context, role domain.Role, identity string, active bool) error {
	const stmt = `
INSERT INTO admin_roles (role, identity, active)
VALUES ($1, $2, $3)
ON CONFLICT (role, identity) DO UPDATE SET active = EXCLUDED.active, updated_at = NOW()`
	if err := exec(ctx, r.pool, stmt, role, identity, active); err != nil {
		return fmt.Errorf("set admin role: %w", err)
	}
	return nil
}

func (r *AdminRepository) IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error) {
	const query = `SELECT active FROM admin_roles WHERE role = $1 AND identity = $2`
	var active bool
	err := queryRow(ctx, r.pool, query, role, identity).Scan(&active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("is admin: %w", err)
	}
	return active, nil
}

func (r *AdminRepository) GetFeeForUpdate(ctx context.Context, tier domain.Tier) (int64, error) {
	const query = `SELECT amount FROM fees WHERE tier = $1 FOR UPDATE`
	var amount int64
	if err := queryRow(ctx, r.pool, query, tier).Scan(&amount); err != nil {
		return 0, fmt.Errorf("get fee: %w", err)
	}
	return amount, nil
}

func (r *AdminRepository) SetFee(ctx context.Context, tier domain.Tier, amount int64) error {
	const stmt = `UPDATE fees SET amount = $2, updated_at = NOW() WHERE tier = $1`
	if err := exec(ctx, r.pool, stmt, tier, amount); err != nil {
		return fmt.Errorf("set fee: %w", err)
	}
	return nil
}

func (r *AdminRepository) GetFee(ctx context.Context, tier domain.Tier) (int64, error) {
	const query = `SELECT amount FROM fees WHERE tier = $1`
	var amount int64
	if err := queryRow(ctx, r.pool, query, tier).Scan(&amount); err != nil {
		return 0, fmt.Errorf("get fee: %w", err)
	}
	return amount, nil
}
