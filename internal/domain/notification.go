package domain

import "time"

type NotificationType string

const (
	NotificationAdminSet             NotificationType = "AdminSet"
	NotificationFeeSet               NotificationType = "FeeSet"
	NotificationMembershipRegistered NotificationType = "MembershipRegistered"
	NotificationMembershipApproved   NotificationType = "MembershipApproved"
	NotificationMembershipRejected   NotificationType = "MembershipRejected"
	NotificationEventCreated         NotificationType = "EventCreated"
	NotificationEventCancelled       NotificationType = "EventCancelled"
	NotificationEventRegistration    NotificationType = "EventRegistration"
)

// Notification is the audit record emitted after every committed mutation.
// Observers consume these; no internal invariant depends on them.
type Notification struct {
	ID   string           `json:"id"`
	Type NotificationType `json:"type"`
	At   time.Time        `json:"at"`
	Data any              `json:"data"`
}

type AdminSetData struct {
	Role     Role   `json:"role"`
	Identity string `json:"identity"`
	Active   bool   `json:"active"`
}

type FeeSetData struct {
	Tier   Tier  `json:"tier"`
	Amount int64 `json:"amount"`
}

type MembershipRegisteredData struct {
	MemberID string `json:"member_id"`
	Tier     Tier   `json:"tier"`
	Paid     int64  `json:"paid"`
}

type MembershipResolvedData struct {
	MemberID string `json:"member_id"`
	AdminID  string `json:"admin_id"`
	Refunded int64  `json:"refunded,omitempty"`
}

type EventCreatedData struct {
	EventID           int64     `json:"event_id"`
	MaxQuota          int       `json:"max_quota"`
	EarlyAccessEndsAt time.Time `json:"early_access_ends_at"`
}

type EventCancelledData struct {
	EventID     int64     `json:"event_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type EventRegistrationData struct {
	EventID  int64  `json:"event_id"`
	MemberID string `json:"member_id"`
	Tier     Tier   `json:"tier"`
}
