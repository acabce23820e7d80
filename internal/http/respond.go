package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/league"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps a domain error to its status code. Anything that is not a
// league.Error is logged and reported as an internal error.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *league.Error
	if !errors.As(err, &domainErr) {
		log.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, league.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, league.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, league.ErrConflict):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: domainErr.Message})
}

// decodeJSON reads a JSON request body into v. An empty body leaves v
// untouched; anything after the first value is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return nil
		}
		if err == nil {
			err = errors.New("unexpected data after JSON body")
		}
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return league.NewValidationError("request body too large")
	}
	log.Debug("Failed to decode request body", "error", err)
	return league.NewValidationError("invalid JSON body")
}
