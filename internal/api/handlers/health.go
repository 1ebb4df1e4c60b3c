package handlers

import (
	"context"
	"net/http"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StatusHandler exposes the service health check.
type StatusHandler struct {
	DB Pinger
}

// Status returns 200 while the database connection is healthy.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}
