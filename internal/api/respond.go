package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/riddler9999/recapflow/internal/recap"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainError maps pipeline sentinels onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recap.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "job not found")
	case errors.Is(err, recap.ErrNotReady):
		writeError(w, http.StatusConflict, "not ready yet")
	case errors.Is(err, recap.ErrJobBusy):
		writeError(w, http.StatusConflict, "job is already processing")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
