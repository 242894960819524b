package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clubgate/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool        *pgxpool.Pool
	roles       *AdminRepository
	memberships *MembershipRepository
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		pool:        pool,
		roles:       NewAdminRepository(pool),
		memberships: NewMembershipRepository(pool),
	}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error) {
	return r.roles.IsAdmin(ctx, role, identity)
}

func (r *EventRepository) GetMembership(ctx context.Context, memberID string) (*domain.Membership, error) {
	return r.memberships.GetMembership(ctx, memberID)
}

func (r *EventRepository) CreateEvent(ctx context.Context, e domain.Event) (int64, error) {
	const stmt = `
INSERT INTO events (max_quota, early_access_ends_at, created_at)
VALUES ($1, $2, $3)
RETURNING id`
	var id int64
	if err := queryRow(ctx, r.pool, stmt, e.MaxQuota, e.EarlyAccessEndsAt, e.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return id, nil
}

const eventColumns = `id, max_quota, early_access_ends_at, cancelled_at, total_registered, vip_registered, other_registered, created_at`

func (r *EventRepository) GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	return r.scanEvent(queryRow(ctx, r.pool, query, eventID))
}

func (r *EventRepository) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(queryRow(ctx, r.pool, query, eventID))
}

func (r *EventRepository) scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.MaxQuota,
		&e.EarlyAccessEndsAt,
		&e.CancelledAt,
		&e.TotalRegistered,
		&e.VIPRegistered,
		&e.OtherRegistered,
		&e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, e domain.Event) error {
	const stmt = `
UPDATE events SET
	cancelled_at = $2,
	total_registered = $3,
	vip_registered = $4,
	other_registered = $5,
	updated_at = NOW()
WHERE id = $1`
	err := exec(ctx, r.pool, stmt, e.ID, e.CancelledAt, e.TotalRegistered, e.VIPRegistered, e.OtherRegistered)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (r *EventRepository) HasRegistration(ctx context.Context, eventID int64, memberID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND member_id = $2)`
	var exists bool
	if err := queryRow(ctx, r.pool, query, eventID, memberID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has registration: %w", err)
	}
	return exists, nil
}

func (r *EventRepository) AddRegistration(ctx context.Context, eventID int64, memberID string, at time.Time) error {
	const stmt = `INSERT INTO event_registrations (event_id, member_id, registered_at) VALUES ($1, $2, $3)`
	if err := exec(ctx, r.pool, stmt, eventID, memberID, at); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("add registration: %w", err)
	}
	return nil
}
