package shared

import "net/http"

// Actor identifies who performed a request for the audit trail. With no
// authentication layer in front, the caller supplies it via header.
func Actor(r *http.Request) string {
	if actor := r.Header.Get("X-Actor-ID"); actor != "" {
		return actor
	}
	return "system"
}
