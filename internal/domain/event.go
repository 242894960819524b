package domain

import "time"

// Event is a capacity-constrained gathering with a time-boxed VIP-only
// window. Ids are sequential starting at 1.
type Event struct {
	ID                int64
	MaxQuota          int
	EarlyAccessEndsAt time.Time
	CancelledAt       *time.Time
	TotalRegistered   int
	VIPRegistered     int
	OtherRegistered   int
	CreatedAt         time.Time
}

func (e Event) Cancelled() bool {
	return e.CancelledAt != nil
}

// ReservedOtherCap is the permanent ceiling on non-VIP registrants: half the
// quota, rounded down. The other half (plus the rounding remainder) is only
// reachable by VIPs, during and after early access.
func (e Event) ReservedOtherCap() int {
	return e.MaxQuota / 2
}

// EarlyAccess reports whether the VIP-only window is still open at now.
func (e Event) EarlyAccess(now time.Time) bool {
	return now.Before(e.EarlyAccessEndsAt)
}
