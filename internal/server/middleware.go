package server

import (
	"net/http"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"songblog/internal/auth"
)

// requireAuth verifies the Authorization bearer token and attaches the decoded
// identity to the request context. Missing, malformed, expired, or tampered
// tokens end the request with 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.respond(w, http.StatusUnauthorized, errorResponse{Message: "no token provided"})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respond(w, http.StatusUnauthorized, errorResponse{Message: "no token provided"})
			return
		}

		ident, err := auth.ParseToken(s.cfg.Auth.Secret, token)
		if err != nil {
			s.respond(w, http.StatusUnauthorized, errorResponse{Message: "invalid token"})
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), ident)))
	})
}

// logRequests logs method, path, status, and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Truncate(time.Millisecond),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// recoverer turns panics into a JSON 500 instead of a dropped connection.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "path", r.URL.Path, "panic", rec)
				s.respond(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a per-IP token bucket to the wrapped routes. Used on the
// credential endpoints to slow brute forcing.
func (s *Server) rateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[ip] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if idx := strings.LastIndex(ip, ":"); idx > 0 {
				ip = ip[:idx]
			}
			if !limiterFor(ip).Allow() {
				s.respond(w, http.StatusTooManyRequests, errorResponse{Message: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
