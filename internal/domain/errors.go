package domain

import "errors"

var (
	// Authorization.
	ErrNotOwner           = errors.New("caller is not the owner")
	ErrNotMembershipAdmin = errors.New("caller is not a membership admin")
	ErrNotEventAdmin      = errors.New("caller is not an event admin")
	ErrNotMember          = errors.New("caller is not an active member")

	// State conflicts.
	ErrAdminAlreadyActive    = errors.New("admin already active")
	ErrAdminAlreadyInactive  = errors.New("admin already inactive")
	ErrSameFee               = errors.New("new fee must be different from previous fee")
	ErrRegistrationPending   = errors.New("registration already pending approval")
	ErrAlreadyMember         = errors.New("membership already active")
	ErrNoPendingRegistration = errors.New("no pending registration")
	ErrAlreadyCancelled      = errors.New("event already cancelled")
	ErrAlreadyRegistered     = errors.New("already registered for this event")

	// Validation.
	ErrInvalidTier        = errors.New("invalid membership tier")
	ErrInvalidRole        = errors.New("invalid admin role")
	ErrInvalidFee         = errors.New("fee must not be negative")
	ErrInvalidQuota       = errors.New("quota must not be negative")
	ErrWrongFee           = errors.New("incorrect registration fee")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrEventNotFound      = errors.New("event not found")

	// Capacity and timing.
	ErrEventCancelled  = errors.New("event cancelled")
	ErrEarlyAccessOnly = errors.New("early access restricted to vip members")
	ErrQuotaExhausted  = errors.New("event quota exhausted")

	// ErrTransferFailed wraps a payment-collaborator failure during refund.
	// The rejected operation rolls back entirely; escrow stays put.
	ErrTransferFailed = errors.New("refund transfer failed")
)
