// Package memory is the in-process store. State transitions run one at a
// time under a single mutex, and WithTx snapshots the whole state so a
// failed operation commits nothing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clubgate/api/internal/domain"
)

type registrationKey struct {
	eventID  int64
	memberID string
}

type roleKey struct {
	role     domain.Role
	identity string
}

type Store struct {
	mu sync.Mutex

	roles         map[roleKey]bool
	fees          map[domain.Tier]int64
	memberships   map[string]domain.Membership
	events        map[int64]domain.Event
	registrations map[registrationKey]time.Time
	nextEventID   int64
}

func NewStore() *Store {
	return &Store{
		roles:         make(map[roleKey]bool),
		fees:          domain.DefaultFees(),
		memberships:   make(map[string]domain.Membership),
		events:        make(map[int64]domain.Event),
		registrations: make(map[registrationKey]time.Time),
		nextEventID:   1,
	}
}

type txKey struct{}

// WithTx serializes the operation against all others and rolls the state
// back when fn returns an error.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

// lock takes the store mutex unless the context already runs inside WithTx.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	roles         map[roleKey]bool
	fees          map[domain.Tier]int64
	memberships   map[string]domain.Membership
	events        map[int64]domain.Event
	registrations map[registrationKey]time.Time
	nextEventID   int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		roles:         make(map[roleKey]bool, len(s.roles)),
		fees:          make(map[domain.Tier]int64, len(s.fees)),
		memberships:   make(map[string]domain.Membership, len(s.memberships)),
		events:        make(map[int64]domain.Event, len(s.events)),
		registrations: make(map[registrationKey]time.Time, len(s.registrations)),
		nextEventID:   s.nextEventID,
	}
	for k, v := range s.roles {
		snap.roles[k] = v
	}
	for k, v := range s.fees {
		snap.fees[k] = v
	}
	for k, v := range s.memberships {
		snap.memberships[k] = v
	}
	for k, v := range s.events {
		snap.events[k] = v
	}
	for k, v := range s.registrations {
		snap.registrations[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.roles = snap.roles
	s.fees = snap.fees
	s.memberships = snap.memberships
	s.events = snap.events
	s.registrations = snap.registrations
	s.nextEventID = snap.nextEventID
}

func (s *Store) GetAdminForUpdate(ctx context.Context, role domain.Role, identity string) (bool, error) {
	defer s.lock(ctx)()
	return s.roles[roleKey{role: role, identity: identity}], nil
}

func (s *Store) SetAdmin(ctx context.Context, role domain.Role, identity string, active bool) error {
	defer s.lock(ctx)()
	s.roles[roleKey{role: role, identity: identity}] = active
	return nil
}

func (s *Store) IsAdmin(ctx context.Context, role domain.Role, identity string) (bool, error) {
	defer s.lock(ctx)()
	return s.roles[roleKey{role: role, identity: identity}], nil
}

func (s *Store) GetFeeForUpdate(ctx context.Context, tier domain.Tier) (int64, error) {
	defer s.lock(ctx)()
	return s.fees[tier], nil
}

func (s *Store) SetFee(ctx context.Context, tier domain.Tier, amount int64) error {
	defer s.lock(ctx)()
	s.fees[tier] = amount
	return nil
}

func (s *Store) GetFee(ctx context.Context, tier domain.Tier) (int64, error) {
	defer s.lock(ctx)()
	return s.fees[tier], nil
}

func (s *Store) GetMembershipForUpdate(ctx context.Context, memberID string) (*domain.Membership, error) {
	defer s.lock(ctx)()
	if m, ok := s.memberships[memberID]; ok {
		copied := m
		return &copied, nil
	}
	return nil, nil
}

func (s *Store) GetMembership(ctx context.Context, memberID string) (*domain.Membership, error) {
	return s.GetMembershipForUpdate(ctx, memberID)
}

func (s *Store) SaveMembership(ctx context.Context, m domain.Membership) error {
	defer s.lock(ctx)()
	s.memberships[m.MemberID] = m
	return nil
}

func (s *Store) CreateEvent(ctx context.Context, e domain.Event) (int64, error) {
	defer s.lock(ctx)()
	e.ID = s.nextEventID
	s.nextEventID++
	s.events[e.ID] = e
	return e.ID, nil
}

func (s *Store) GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error) {
	defer s.lock(ctx)()
	e, ok := s.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return e, nil
}

func (s *Store) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	return s.GetEventForUpdate(ctx, eventID)
}

func (s *Store) UpdateEvent(ctx context.Context, e domain.Event) error {
	defer s.lock(ctx)()
	if _, ok := s.events[e.ID]; !ok {
		return domain.ErrEventNotFound
	}
	s.events[e.ID] = e
	return nil
}

func (s *Store) HasRegistration(ctx context.Context, eventID int64, memberID string) (bool, error) {
	defer s.lock(ctx)()
	_, ok := s.registrations[registrationKey{eventID: eventID, memberID: memberID}]
	return ok, nil
}

func (s *Store) AddRegistration(ctx context.Context, eventID int64, memberID string, at time.Time) error {
	defer s.lock(ctx)()
	key := registrationKey{eventID: eventID, memberID: memberID}
	if _, ok := s.registrations[key]; ok {
		return domain.ErrAlreadyRegistered
	}
	s.registrations[key] = at
	return nil
}
