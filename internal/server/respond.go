package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"songblog/internal/shared"
)

// errorResponse is the error envelope every failed request carries.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// respond writes v as a JSON response with the given status.
func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

// respondError maps a domain error onto the HTTP status taxonomy and writes
// the error envelope. Unrecognized errors become an opaque 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrEmailTaken),
		errors.Is(err, shared.ErrUsernameTaken),
		errors.Is(err, shared.ErrInvalidLink):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrInvalidLogin),
		errors.Is(err, shared.ErrNoToken),
		errors.Is(err, shared.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, shared.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, shared.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrUpstream):
		// keep the upstream message for diagnostics
		status = http.StatusInternalServerError
	default:
		message = "internal server error"
	}

	if status >= 500 {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	s.respond(w, status, errorResponse{Message: message})
}

// respondValidation writes a 400 with per-field error lists.
func (s *Server) respondValidation(w http.ResponseWriter, fields map[string][]string) {
	s.respond(w, http.StatusBadRequest, errorResponse{
		Message: "validation failed",
		Errors:  fields,
	})
}

// decode parses the request body as JSON into v.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return shared.ErrInvalidInput
	}
	return nil
}
