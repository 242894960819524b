package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clubgate/api/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeCallerRequired     = "caller_id_required"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// domainErrorCodes maps every sentinel the services return onto an HTTP
// status and a stable wire code.
var domainErrorCodes = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotOwner, http.StatusForbidden, "not_owner"},
	{domain.ErrNotMembershipAdmin, http.StatusForbidden, "not_membership_admin"},
	{domain.ErrNotEventAdmin, http.StatusForbidden, "not_event_admin"},
	{domain.ErrNotMember, http.StatusForbidden, "not_a_member"},

	{domain.ErrAdminAlreadyActive, http.StatusConflict, "admin_already_active"},
	{domain.ErrAdminAlreadyInactive, http.StatusConflict, "admin_already_inactive"},
	{domain.ErrSameFee, http.StatusConflict, "same_fee"},
	{domain.ErrRegistrationPending, http.StatusConflict, "registration_pending"},
	{domain.ErrAlreadyMember, http.StatusConflict, "already_member"},
	{domain.ErrNoPendingRegistration, http.StatusConflict, "no_pending_registration"},
	{domain.ErrAlreadyCancelled, http.StatusConflict, "event_already_cancelled"},
	{domain.ErrAlreadyRegistered, http.StatusConflict, "already_registered"},
	{domain.ErrEventCancelled, http.StatusConflict, "event_cancelled"},
	{domain.ErrEarlyAccessOnly, http.StatusConflict, "early_access_only"},
	{domain.ErrQuotaExhausted, http.StatusConflict, "quota_exhausted"},

	{domain.ErrInvalidTier, http.StatusBadRequest, "invalid_tier"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{domain.ErrInvalidFee, http.StatusBadRequest, "invalid_fee"},
	{domain.ErrInvalidQuota, http.StatusBadRequest, "invalid_quota"},
	{domain.ErrWrongFee, http.StatusBadRequest, "wrong_fee"},

	{domain.ErrMembershipNotFound, http.StatusNotFound, "membership_not_found"},
	{domain.ErrEventNotFound, http.StatusNotFound, "event_not_found"},

	{domain.ErrTransferFailed, http.StatusBadGateway, "transfer_failed"},
}

// writeDomainError translates a service error into the JSON envelope,
// falling back to a plain 500 for anything unexpected.
func writeDomainError(w http.ResponseWriter, err error) {
	for _, entry := range domainErrorCodes {
		if errors.Is(err, entry.err) {
			writeError(w, entry.status, entry.code, entry.err.Error())
			return
		}
	}
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
