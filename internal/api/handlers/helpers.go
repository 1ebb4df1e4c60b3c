package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"archival-transform-service/internal/ports"
	"archival-transform-service/internal/transform"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeFailure maps domain error kinds onto HTTP status codes: missing
// packages are 404, unmappable source data is 400, upstream failures
// are 502, anything else is an opaque 500.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var mapErr *transform.MappingError
	var remoteErr *ports.RemoteError

	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "package not found")
	case errors.As(err, &mapErr):
		writeError(w, r, http.StatusBadRequest, mapErr.Error())
	case errors.As(err, &remoteErr):
		writeError(w, r, http.StatusBadGateway, remoteErr.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
