package server

import (
	"net/http"

	"songblog/internal/auth"
	"songblog/internal/models"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// handleRegister creates a new account. The password is stored only as a
// bcrypt hash; no token is issued on registration.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if fields, ok := s.checkPayload(req); !ok {
		s.respondValidation(w, fields)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user := models.NewUser(req.Email, req.Username, hash)
	if err := s.users.Create(r.Context(), user); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info("user registered", "username", user.Username)
	s.respond(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

// handleLogin verifies credentials and issues a signed bearer token.
//
// Unknown email and wrong password produce the same generic message so the
// endpoint cannot be used to enumerate accounts.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if fields, ok := s.checkPayload(req); !ok {
		s.respondValidation(w, fields)
		return
	}

	user, err := s.users.GetByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		s.respond(w, http.StatusUnauthorized, errorResponse{Message: "invalid email or password"})
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.respond(w, http.StatusUnauthorized, errorResponse{Message: "invalid email or password"})
		return
	}

	token, err := auth.IssueToken(s.cfg.Auth.Secret, user.ID, user.Username)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"token": token})
}
