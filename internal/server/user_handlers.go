package server

import (
	"net/http"
	"strings"

	"songblog/internal/auth"
)

type profileRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
}

// handleGetProfile returns the caller's own account, password hash excluded.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	user, err := s.users.Get(r.Context(), ident.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, user)
}

// handleUpdateProfile updates the caller's email and username.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var req profileRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if fields, ok := s.checkPayload(req); !ok {
		s.respondValidation(w, fields)
		return
	}

	user, err := s.users.Get(r.Context(), ident.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user.Email = normalizeEmail(req.Email)
	user.Username = strings.TrimSpace(req.Username)

	if err := s.users.Update(r.Context(), user); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, user)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
