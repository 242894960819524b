package app

import (
	"context"
	"time"

	"github.com/clubgate/api/internal/clock"
	"github.com/clubgate/api/internal/domain"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error)
	GetMembership(ctx context.Context, memberID string) (*domain.Membership, error)
	CreateEvent(ctx context.Context, e domain.Event) (int64, error)
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error)
	UpdateEvent(ctx context.Context, e domain.Event) error
	HasRegistration(ctx context.Context, eventID int64, memberID string) (bool, error)
	AddRegistration(ctx context.Context, eventID int64, memberID string, at time.Time) error
}

const defaultEarlyAccessWindow = 72 * time.Hour

// EventService owns the event registry and the admission decision: the
// VIP-only early-access window plus the permanent reserved-capacity split.
type EventService struct {
	repo        EventRepository
	clock       clock.Clock
	notifier    Notifier
	earlyAccess time.Duration
}

func NewEventService(repo EventRepository, clk clock.Clock, notifier Notifier, opts ...EventServiceOption) *EventService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	svc := &EventService{
		repo:        repo,
		clock:       clk,
		notifier:    notifier,
		earlyAccess: defaultEarlyAccessWindow,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type EventServiceOption func(*EventService)

// WithEarlyAccessWindow overrides the VIP-only window applied to new events.
func WithEarlyAccessWindow(d time.Duration) EventServiceOption {
	return func(s *EventService) {
		if d > 0 {
			s.earlyAccess = d
		}
	}
}

type CreateEventInput struct {
	AdminID  string
	MaxQuota int
}

// CreateEvent opens a new event with the early-access deadline fixed at
// creation. A zero quota is legal and admits nobody.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	if in.MaxQuota < 0 {
		return domain.Event{}, domain.ErrInvalidQuota
	}

	now := s.clock.Now()
	var result domain.Event

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ok, err := s.repo.IsAdmin(txCtx, domain.RoleEventAdmin, in.AdminID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotEventAdmin
		}

		result = domain.Event{
			MaxQuota:          in.MaxQuota,
			EarlyAccessEndsAt: now.Add(s.earlyAccess),
			CreatedAt:         now,
		}
		id, err := s.repo.CreateEvent(txCtx, result)
		if err != nil {
			return err
		}
		result.ID = id
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationEventCreated, now, domain.EventCreatedData{
		EventID:           result.ID,
		MaxQuota:          result.MaxQuota,
		EarlyAccessEndsAt: result.EarlyAccessEndsAt,
	}))
	return result, nil
}

type CancelEventInput struct {
	AdminID string
	EventID int64
}

// CancelEvent marks an event cancelled. Cancellation is terminal: no
// registration is admitted afterwards.
func (s *EventService) CancelEvent(ctx context.Context, in CancelEventInput) (domain.Event, error) {
	now := s.clock.Now()
	var result domain.Event

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ok, err := s.repo.IsAdmin(txCtx, domain.RoleEventAdmin, in.AdminID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotEventAdmin
		}

		e, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if e.Cancelled() {
			return domain.ErrAlreadyCancelled
		}

		e.CancelledAt = &now
		result = e
		return s.repo.UpdateEvent(txCtx, e)
	})
	if err != nil {
		return domain.Event{}, err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationEventCancelled, now, domain.EventCancelledData{
		EventID:     in.EventID,
		CancelledAt: now,
	}))
	return result, nil
}

type RegisterEventInput struct {
	MemberID string
	EventID  int64
}

// Register admits or rejects a registration attempt. Decision order: active
// membership, event exists, not cancelled, not already registered, the
// early-access gate, then capacity. Non-VIP registrants are capped at half
// the quota (floor) for the lifetime of the event; VIPs are bounded only by
// the full quota.
func (s *EventService) Register(ctx context.Context, in RegisterEventInput) (domain.Event, error) {
	now := s.clock.Now()
	var result domain.Event
	var tier domain.Tier

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		m, err := s.repo.GetMembership(txCtx, in.MemberID)
		if err != nil {
			return err
		}
		if !m.Active() {
			return domain.ErrNotMember
		}
		tier = m.Tier

		e, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if e.Cancelled() {
			return domain.ErrEventCancelled
		}

		registered, err := s.repo.HasRegistration(txCtx, in.EventID, in.MemberID)
		if err != nil {
			return err
		}
		if registered {
			return domain.ErrAlreadyRegistered
		}

		vip := m.Tier.Privileged()
		if e.EarlyAccess(now) && !vip {
			return domain.ErrEarlyAccessOnly
		}
		if e.TotalRegistered >= e.MaxQuota {
			return domain.ErrQuotaExhausted
		}
		if !vip && e.OtherRegistered >= e.ReservedOtherCap() {
			return domain.ErrQuotaExhausted
		}

		e.TotalRegistered++
		if vip {
			e.VIPRegistered++
		} else {
			e.OtherRegistered++
		}

		if err := s.repo.AddRegistration(txCtx, in.EventID, in.MemberID, now); err != nil {
			return err
		}
		result = e
		return s.repo.UpdateEvent(txCtx, e)
	})
	if err != nil {
		return domain.Event{}, err
	}

	s.notifier.Emit(ctx, newNotification(domain.NotificationEventRegistration, now, domain.EventRegistrationData{
		EventID:  in.EventID,
		MemberID: in.MemberID,
		Tier:     tier,
	}))
	return result, nil
}

// GetEvent returns a snapshot of an event's state and counters.
func (s *EventService) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	return s.repo.GetEvent(ctx, eventID)
}
