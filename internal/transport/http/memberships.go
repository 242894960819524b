package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clubgate/api/internal/app"
	"github.com/clubgate/api/internal/domain"
)

// MembershipRegistrar is the minimal interface for opening an enrollment.
type MembershipRegistrar interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.Membership, error)
}

// HandleMemberships returns the handler for POST /memberships.
func HandleMemberships(svc MembershipRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caller, ok := callerID(w, r)
		if !ok {
			return
		}

		var req registerMembershipRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		m, err := svc.Register(r.Context(), app.RegisterInput{
			MemberID:   caller,
			Tier:       domain.Tier(req.Tier),
			PaidAmount: req.PaidAmount,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newMembershipResponse(m))
	}
}

// MembershipResolver is the minimal interface for the per-member endpoints.
type MembershipResolver interface {
	Approve(ctx context.Context, in app.ResolveInput) (domain.Membership, error)
	Reject(ctx context.Context, in app.ResolveInput) (domain.Membership, error)
	GetMembership(ctx context.Context, memberID string) (domain.Membership, error)
}

// HandleMembership returns the handler for GET /memberships/{id} and
// POST /memberships/{id}/approve | /reject.
func HandleMembership(svc MembershipResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, action, ok := parseMembershipPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case action == "" && r.Method == http.MethodGet:
			m, err := svc.GetMembership(r.Context(), memberID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newMembershipResponse(m))

		case action == "approve" && r.Method == http.MethodPost:
			resolve(w, r, memberID, svc.Approve)

		case action == "reject" && r.Method == http.MethodPost:
			resolve(w, r, memberID, svc.Reject)

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func resolve(w http.ResponseWriter, r *http.Request, memberID string, fn func(context.Context, app.ResolveInput) (domain.Membership, error)) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	m, err := fn(r.Context(), app.ResolveInput{AdminID: caller, MemberID: memberID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newMembershipResponse(m))
}

func parseMembershipPath(path string) (memberID, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "memberships" || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 2 {
		return parts[1], "", true
	}
	if parts[2] != "approve" && parts[2] != "reject" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

type registerMembershipRequest struct {
	Tier       string `json:"tier"`
	PaidAmount int64  `json:"paid_amount"`
}

type membershipResponse struct {
	MemberID     string     `json:"member_id"`
	Tier         string     `json:"tier"`
	Status       string     `json:"status"`
	EscrowAmount int64      `json:"escrow_amount"`
	IsMember     bool       `json:"is_member"`
	AppliedAt    time.Time  `json:"applied_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func newMembershipResponse(m domain.Membership) membershipResponse {
	return membershipResponse{
		MemberID:     m.MemberID,
		Tier:         string(m.Tier),
		Status:       string(m.Status),
		EscrowAmount: m.EscrowAmount,
		IsMember:     m.Status == domain.MembershipStatusActive,
		AppliedAt:    m.AppliedAt,
		ResolvedAt:   m.ResolvedAt,
		ExpiresAt:    m.ExpiresAt,
	}
}
