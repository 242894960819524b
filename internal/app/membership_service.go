package app

import (
	"context"
	"fmt"

	"github.com/clubgate/api/internal/clock"
	"github.com/clubgate/api/internal/domain"
)

type MembershipRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetFee(ctx context.Context, tier domain.Tier) (int64, error)
	IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error)
	GetMembershipForUpdate(ctx context.Context, memberID string) (*domain.Membership, error)
	GetMembership(ctx context.Context, memberID string) (*domain.Membership, error)
	SaveMembership(ctx context.Context, m domain.Membership) error
}

// Treasury is the external payment-transfer primitive. A transfer either
// lands in full or returns an error; there is no partial outcome.
type Treasury interface {
	Transfer(ctx context.Context, to string, amount int64) error
}

// MembershipService runs the enrollment escrow state machine:
// inactive -> pending (register, fee escrowed) -> active (approve, fee kept)
// or back to inactive (reject, fee refunded).
type MembershipService struct {
	repo     MembershipRepository
	treasury Treasury
	clock    clock.Clock
	notifier Notifier
}

func NewMembershipService(repo MembershipRepository, treasury Treasury, clk clock.Clock, notifier Notifier) *MembershipService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &MembershipService{
		repo:     repo,
		treasury: treasury,
		clock:    clk,
		notifier: notifier,
	}
}

type RegisterInput struct {
	MemberID   string
	Tier       domain.Tier
	PaidAmount int64
}

// Register opens a pending enrollment with the paid fee held in escrow.
// Re-registering while pending or active is rejected; a tier change requires
// the current record to be resolved first.
func (s *MembershipService) Register(ctx context.Context, in RegisterInput) (domain.Membership, error) {
	if !in.Tier.Valid() {
		return domain.Membership{}, domain.ErrInvalidTier
	}

	now := s.clock.Now()
	var result domain.Membership

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		fee, err := s.repo.GetFee(txCtx, in.Tier)
		if err != nil {
			return err
		}
		if in.PaidAmount != fee {
			return domain.ErrWrongFee
		}

		existing, err := s.repo.GetMembershipForUpdate(txCtx, in.MemberID)
		if err != nil {
			return err
		}
		if existing.Pending() {
			return domain.ErrRegistrationPending
		}
		if existing.Active() {
			return domain.ErrAlreadyMember
		}

		result = domain.Membership{
			MemberID:     in.MemberID,
			Tier:         in.Tier,
			Status:       domain.MembershipStatusPending,
			EscrowAmount: in.PaidAmount,
			AppliedAt:    now,
		}
		return s.repo.SaveMembership(txCtx, result)
	})
	if err != nil {
		return domain.Membership{}, err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationMembershipRegistered, now, domain.MembershipRegisteredData{
		MemberID: in.MemberID,
		Tier:     in.Tier,
		Paid:     in.PaidAmount,
	}))
	return result, nil
}

type ResolveInput struct {
	AdminID  string
	MemberID string
}

// Approve activates a pending enrollment. The escrowed fee stays with the
// club as revenue; the membership runs for one month from approval.
func (s *MembershipService) Approve(ctx context.Context, in ResolveInput) (domain.Membership, error) {
	now := s.clock.Now()
	var result domain.Membership

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ok, err := s.repo.IsAdmin(txCtx, domain.RoleMembershipAdmin, in.AdminID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotMembershipAdmin
		}

		m, err := s.repo.GetMembershipForUpdate(txCtx, in.MemberID)
		if err != nil {
			return err
		}
		if !m.Pending() {
			return domain.ErrNoPendingRegistration
		}

		expires := now.AddDate(0, 1, 0)
		m.Status = domain.MembershipStatusActive
		m.ResolvedAt = &now
		m.ExpiresAt = &expires
		result = *m
		return s.repo.SaveMembership(txCtx, *m)
	})
	if err != nil {
		return domain.Membership{}, err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationMembershipApproved, now, domain.MembershipResolvedData{
		MemberID: in.MemberID,
		AdminID:  in.AdminID,
	}))
	return result, nil
}

// Reject refunds the escrowed fee and clears the pending record. The refund
// goes through the treasury first: if the transfer fails, the transaction
// rolls back and the record stays pending with escrow intact. The treasury
// sits outside the store transaction, so a store failure after a successful
// transfer leaves the refund credited while the record stays pending; the
// treasury is the system of record for money movement.
func (s *MembershipService) Reject(ctx context.Context, in ResolveInput) (domain.Membership, error) {
	now := s.clock.Now()
	var result domain.Membership
	var refunded int64

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ok, err := s.repo.IsAdmin(txCtx, domain.RoleMembershipAdmin, in.AdminID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotMembershipAdmin
		}

		m, err := s.repo.GetMembershipForUpdate(txCtx, in.MemberID)
		if err != nil {
			return err
		}
		if !m.Pending() {
			return domain.ErrNoPendingRegistration
		}

		if err := s.treasury.Transfer(txCtx, m.MemberID, m.EscrowAmount); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
		}

		refunded = m.EscrowAmount
		m.Status = domain.MembershipStatusInactive
		m.EscrowAmount = 0
		m.ResolvedAt = &now
		result = *m
		return s.repo.SaveMembership(txCtx, *m)
	})
	if err != nil {
		return domain.Membership{}, err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationMembershipRejected, now, domain.MembershipResolvedData{
		MemberID: in.MemberID,
		AdminID:  in.AdminID,
		Refunded: refunded,
	}))
	return result, nil
}

// IsMember reports whether the identity holds an active membership.
func (s *MembershipService) IsMember(ctx context.Context, memberID string) (bool, error) {
	m, err := s.repo.GetMembership(ctx, memberID)
	if err != nil {
		return false, err
	}
	return m.Active(), nil
}

// GetMembership returns the enrollment record for an identity.
func (s *MembershipService) GetMembership(ctx context.Context, memberID string) (domain.Membership, error) {
	m, err := s.repo.GetMembership(ctx, memberID)
	if err != nil {
		return domain.Membership{}, err
	}
	if m == nil {
		return domain.Membership{}, domain.ErrMembershipNotFound
	}
	return *m, nil
}
