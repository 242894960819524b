package app

import (
	"context"

	"github.com/clubgate/api/internal/clock"
	"github.com/clubgate/api/internal/domain"
)

type AdminRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetAdminForUpdate(ctx context.Context, role domain.Role, identity string) (bool, error)
	SetAdmin(ctx context.Context, role domain.Role, identity string, active bool) error
	IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error)
	GetFeeForUpdate(ctx context.Context, tier domain.Tier) (int64, error)
	SetFee(ctx context.Context, tier domain.Tier, amount int64) error
	GetFee(ctx context.Context, tier domain.Tier) (int64, error)
}

// AdminService covers the owner-only surface: granting and revoking admin
// roles, and maintaining the per-tier fee table.
type AdminService struct {
	repo     AdminRepository
	clock    clock.Clock
	notifier Notifier
	owner    string
}

func NewAdminService(repo AdminRepository, clk clock.Clock, notifier Notifier, owner string) *AdminService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &AdminService{
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		owner:    owner,
	}
}

type SetAdminInput struct {
	CallerID string
	Role     domain.Role
	Identity string
	Active   bool
}

// SetAdmin toggles an admin flag. Toggling to the state already held fails,
// so repeated grants or revokes surface instead of silently passing.
func (s *AdminService) SetAdmin(ctx context.Context, in SetAdminInput) error {
	if in.CallerID != s.owner {
		return domain.ErrNotOwner
	}
	if _, err := domain.ParseRole(string(in.Role)); err != nil {
		return err
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		active, err := s.repo.GetAdminForUpdate(txCtx, in.Role, in.Identity)
		if err != nil {
			return err
		}
		if active == in.Active {
			if in.Active {
				return domain.ErrAdminAlreadyActive
			}
			return domain.ErrAdminAlreadyInactive
		}
		return s.repo.SetAdmin(txCtx, in.Role, in.Identity, in.Active)
	})
	if err != nil {
		return err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationAdminSet, s.clock.Now(), domain.AdminSetData{
		Role:     in.Role,
		Identity: in.Identity,
		Active:   in.Active,
	}))
	return nil
}

type SetFeeInput struct {
	CallerID string
	Tier     domain.Tier
	Amount   int64
}

// SetFee replaces a tier's registration fee. Pending and active memberships
// keep the amount they paid; only future registrations see the new fee.
func (s *AdminService) SetFee(ctx context.Context, in SetFeeInput) error {
	if in.CallerID != s.owner {
		return domain.ErrNotOwner
	}
	if !in.Tier.Valid() {
		return domain.ErrInvalidTier
	}
	if in.Amount < 0 {
		return domain.ErrInvalidFee
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetFeeForUpdate(txCtx, in.Tier)
		if err != nil {
			return err
		}
		if current == in.Amount {
			return domain.ErrSameFee
		}
		return s.repo.SetFee(txCtx, in.Tier, in.Amount)
	})
	if err != nil {
		return err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationFeeSet, s.clock.Now(), domain.FeeSetData{
		Tier:   in.Tier,
		Amount: in.Amount,
	}))
	return nil
}

// Fee looks up the current registration fee for a tier.
func (s *AdminService) Fee(ctx context.Context, tier domain.Tier) (int64, error) {
	if !tier.Valid() {
		return 0, domain.ErrInvalidTier
	}
	return s.repo.GetFee(ctx, tier)
}

// IsAdmin reports whether an identity currently holds a role.
func (s *AdminService) IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error) {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return false, err
	}
	return s.repo.IsAdmin(ctx, role, identity)
}
