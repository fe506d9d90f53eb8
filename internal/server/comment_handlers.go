package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"songblog/internal/auth"
	"songblog/internal/models"
)

type createCommentRequest struct {
	Text   string `json:"text" validate:"required"`
	PostID string `json:"postId" validate:"required"`
}

// handleCreateComment attaches a comment to an existing post. Any
// authenticated user may comment; the post must exist.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var req createCommentRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if fields, ok := s.checkPayload(req); !ok {
		s.respondValidation(w, fields)
		return
	}

	if _, err := s.blogs.Get(r.Context(), req.PostID); err != nil {
		s.respondError(w, r, err)
		return
	}

	comment := models.NewComment(req.PostID, ident.ID, req.Text)
	if err := s.comments.Create(r.Context(), comment); err != nil {
		s.respondError(w, r, err)
		return
	}

	comment.Author = ident.Username
	s.respond(w, http.StatusCreated, comment)
}

// handleListComments returns all comments on a post, oldest first. Public.
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.comments.ListByPost(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, comments)
}
