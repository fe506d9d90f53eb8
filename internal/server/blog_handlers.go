package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"songblog/internal/auth"
	"songblog/internal/models"
	"songblog/internal/shared"
)

type createBlogRequest struct {
	Title   string `json:"title" validate:"required"`
	Text    string `json:"text" validate:"required"`
	SongURL string `json:"songUrl" validate:"required"`
}

type updateBlogRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// handleCreateBlog resolves song metadata from the submitted catalog link and
// persists the post. Resolution happens first: if the catalog lookup fails the
// post is not created at all.
func (s *Server) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var req createBlogRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if fields, ok := s.checkPayload(req); !ok {
		s.respondValidation(w, fields)
		return
	}

	song, err := s.resolver.Resolve(r.Context(), req.SongURL)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	blog := models.NewBlog(req.Title, req.Text, song, ident.ID)
	if err := s.blogs.Create(r.Context(), blog); err != nil {
		s.respondError(w, r, err)
		return
	}

	blog.Author = ident.Username
	s.logger.Info("blog created", "id", blog.ID, "author", ident.Username)
	s.respond(w, http.StatusCreated, blog)
}

// handleListMyBlogs returns the caller's own posts, newest first.
func (s *Server) handleListMyBlogs(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	blogs, err := s.blogs.ListByAuthor(r.Context(), ident.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, blogs)
}

// handleListAllBlogs returns every post, newest first. Public.
func (s *Server) handleListAllBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.blogs.ListAll(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, blogs)
}

// handleGetBlog returns a single post. Public.
func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := s.blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, blog)
}

// handleUpdateBlog edits a post's title and text. Only the author may edit;
// the ownership check runs against the stored row on every request.
func (s *Server) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var req updateBlogRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if fields, ok := s.checkPayload(req); !ok {
		s.respondValidation(w, fields)
		return
	}

	blog, err := s.blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if blog.AuthorID != ident.ID {
		s.respondError(w, r, shared.ErrForbidden)
		return
	}

	blog.Title = req.Title
	blog.Text = req.Text

	if err := s.blogs.Update(r.Context(), blog); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, blog)
}

// handleDeleteBlog removes a post and all of its comments in one transaction.
// Only the author may delete.
func (s *Server) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	id := chi.URLParam(r, "id")

	blog, err := s.blogs.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if blog.AuthorID != ident.ID {
		s.respondError(w, r, shared.ErrForbidden)
		return
	}

	if err := s.blogs.DeleteCascade(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info("blog deleted", "id", id, "author", ident.Username)
	s.respond(w, http.StatusOK, map[string]string{"message": "blog and associated comments deleted successfully"})
}
