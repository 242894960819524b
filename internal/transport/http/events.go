package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/clubgate/api/internal/app"
	"github.com/clubgate/api/internal/domain"
)

// EventCreator is the minimal interface for POST /events.
type EventCreator interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
}

// HandleEvents returns the handler for creating events.
func HandleEvents(svc EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caller, ok := callerID(w, r)
		if !ok {
			return
		}

		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
			AdminID:  caller,
			MaxQuota: req.MaxQuota,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newEventResponse(event))
	}
}

// EventRegistry is the minimal interface for the per-event endpoints.
type EventRegistry interface {
	CancelEvent(ctx context.Context, in app.CancelEventInput) (domain.Event, error)
	Register(ctx context.Context, in app.RegisterEventInput) (domain.Event, error)
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
}

// HandleEvent returns the handler for GET /events/{id},
// POST /events/{id}/cancel and POST /events/{id}/registrations.
func HandleEvent(svc EventRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, action, ok := parseEventPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case action == "" && r.Method == http.MethodGet:
			event, err := svc.GetEvent(r.Context(), eventID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newEventResponse(event))

		case action == "cancel" && r.Method == http.MethodPost:
			caller, ok := callerID(w, r)
			if !ok {
				return
			}
			event, err := svc.CancelEvent(r.Context(), app.CancelEventInput{AdminID: caller, EventID: eventID})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newEventResponse(event))

		case action == "registrations" && r.Method == http.MethodPost:
			caller, ok := callerID(w, r)
			if !ok {
				return
			}
			event, err := svc.Register(r.Context(), app.RegisterEventInput{MemberID: caller, EventID: eventID})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(newEventResponse(event))

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func parseEventPath(path string) (eventID int64, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "events" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	if len(parts) == 2 {
		return id, "", true
	}
	if parts[2] != "cancel" && parts[2] != "registrations" {
		return 0, "", false
	}
	return id, parts[2], true
}

type createEventRequest struct {
	MaxQuota int `json:"max_quota"`
}

type eventResponse struct {
	ID                int64      `json:"id"`
	MaxQuota          int        `json:"max_quota"`
	EarlyAccessEndsAt time.Time  `json:"early_access_ends_at"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	TotalRegistered   int        `json:"total_registered"`
	VIPRegistered     int        `json:"vip_registered"`
	OtherRegistered   int        `json:"other_registered"`
	CreatedAt         time.Time  `json:"created_at"`
}

func newEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:                e.ID,
		MaxQuota:          e.MaxQuota,
		EarlyAccessEndsAt: e.EarlyAccessEndsAt,
		CancelledAt:       e.CancelledAt,
		TotalRegistered:   e.TotalRegistered,
		VIPRegistered:     e.VIPRegistered,
		OtherRegistered:   e.OtherRegistered,
		CreatedAt:         e.CreatedAt,
	}
}
