package http

import (
	"log"
	"net/http"

	"github.com/clubgate/api/internal/app"
)

// NewRouter wires every endpoint plus CORS and request logging. main and
// the integration tests share it so routes cannot drift.
func NewRouter(
	admin *app.AdminService,
	memberships *app.MembershipService,
	events *app.EventService,
	logger *log.Logger,
	corsOrigins []string,
) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.Handle("/admin/roles", HandleAdminRoles(admin))
	mux.Handle("/admin/fees", HandleAdminFees(admin))
	mux.Handle("/fees/", HandleFees(admin))
	mux.Handle("/memberships", HandleMemberships(memberships))
	mux.Handle("/memberships/", HandleMembership(memberships))
	mux.Handle("/events", HandleEvents(events))
	mux.Handle("/events/", HandleEvent(events))
	mux.Handle("/", NotFoundHandler())

	return RequestLogger(CORS(corsOrigins, mux), logger)
}
