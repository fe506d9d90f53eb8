// Package server provides the HTTP API for the songblog service.
//
// # Routing
//
// Routing is built on [github.com/go-chi/chi/v5]. Public routes (login,
// registration, the public blog and comment listings, static files) and
// bearer-protected routes (profile, authoring, commenting) live in separate
// route groups. Registration and login are additionally rate limited per IP.
//
// # Middleware
//
// The middleware stack is request id, real ip, request logging, and a JSON
// recoverer. [Server.requireAuth] verifies the Authorization bearer token and
// attaches the decoded identity to the request context for downstream
// handlers.
//
// # Request validation
//
// Request payloads are validated with [github.com/go-playground/validator/v10].
// Validation failures return 400 with a message plus per-field error lists:
//
//	{"message": "validation failed", "errors": {"password": ["password must be at least 8 characters"]}}
//
// # Error shaping
//
// Handlers return errors wrapping the sentinels in internal/shared; the
// responder maps them onto the HTTP status taxonomy (400 validation/conflict,
// 401 auth, 403 ownership, 404 lookup, 500 upstream or unexpected). Every
// error response carries a message field.
package server
