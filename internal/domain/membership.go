package domain

import "time"

type MembershipStatus string

const (
	MembershipStatusInactive MembershipStatus = "inactive"
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusActive   MembershipStatus = "active"
)

// Membership is the per-identity enrollment record. The paid fee sits in
// EscrowAmount from registration until an admin approves (amount kept as
// revenue) or rejects (amount refunded, reset to zero).
type Membership struct {
	MemberID     string
	Tier         Tier
	Status       MembershipStatus
	EscrowAmount int64
	AppliedAt    time.Time
	ResolvedAt   *time.Time
	// ExpiresAt is set to one month after approval. Nothing consults it
	// yet; admission goes by Status alone.
	ExpiresAt *time.Time
}

// Active reports whether the identity currently counts as a member.
func (m *Membership) Active() bool {
	return m != nil && m.Status == MembershipStatusActive
}

// Pending reports whether the record awaits an admin decision.
func (m *Membership) Pending() bool {
	return m != nil && m.Status == MembershipStatusPending
}
