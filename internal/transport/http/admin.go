package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clubgate/api/internal/app"
	"github.com/clubgate/api/internal/domain"
)

// RoleAdminService is the minimal interface for the owner's role endpoint.
type RoleAdminService interface {
	SetAdmin(ctx context.Context, in app.SetAdminInput) error
}

// HandleAdminRoles returns the handler for granting/revoking admin roles.
func HandleAdminRoles(svc RoleAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caller, ok := callerID(w, r)
		if !ok {
			return
		}

		var req setAdminRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.SetAdmin(r.Context(), app.SetAdminInput{
			CallerID: caller,
			Role:     domain.Role(req.Role),
			Identity: req.Identity,
			Active:   req.Active,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(setAdminResponse{
			Role:     req.Role,
			Identity: req.Identity,
			Active:   req.Active,
		})
	}
}

// FeeAdminService is the minimal interface for the owner's fee endpoint.
type FeeAdminService interface {
	SetFee(ctx context.Context, in app.SetFeeInput) error
}

// HandleAdminFees returns the handler for updating tier fees.
func HandleAdminFees(svc FeeAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caller, ok := callerID(w, r)
		if !ok {
			return
		}

		var req setFeeRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.SetFee(r.Context(), app.SetFeeInput{
			CallerID: caller,
			Tier:     domain.Tier(req.Tier),
			Amount:   req.Amount,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(feeResponse{Tier: req.Tier, Amount: req.Amount})
	}
}

// FeeReader is the minimal interface for the public fee lookup.
type FeeReader interface {
	Fee(ctx context.Context, tier domain.Tier) (int64, error)
}

// HandleFees returns the handler for GET /fees/{tier}.
func HandleFees(svc FeeReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		tier, ok := parseFeePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		amount, err := svc.Fee(r.Context(), domain.Tier(tier))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(feeResponse{Tier: tier, Amount: amount})
	}
}

func parseFeePath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "fees" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type setAdminRequest struct {
	Role     string `json:"role"`
	Identity string `json:"identity"`
	Active   bool   `json:"active"`
}

type setAdminResponse struct {
	Role     string `json:"role"`
	Identity string `json:"identity"`
	Active   bool   `json:"active"`
}

type setFeeRequest struct {
	Tier   string `json:"tier"`
	Amount int64  `json:"amount"`
}

type feeResponse struct {
	Tier   string `json:"tier"`
	Amount int64  `json:"amount"`
}
