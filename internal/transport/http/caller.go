package http

import "net/http"

// The identity system in front of this service puts the authenticated
// caller id in this header.
const callerHeader = "X-Caller-ID"

// callerID extracts the caller identity, writing a 400 when absent.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(callerHeader)
	if id == "" {
		writeError(w, http.StatusBadRequest, codeCallerRequired, "caller id required")
		return "", false
	}
	return id, true
}
