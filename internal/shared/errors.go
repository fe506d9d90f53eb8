package shared

import "fmt"

var (
	// Input validation errors
	ErrValidation   = fmt.Errorf("validation failed")
	ErrInvalidInput = fmt.Errorf("invalid input")

	// Uniqueness violations
	ErrEmailTaken    = fmt.Errorf("email already exists")
	ErrUsernameTaken = fmt.Errorf("username already exists")

	// Authentication and authorization errors
	ErrInvalidLogin = fmt.Errorf("invalid email or password")
	ErrNoToken      = fmt.Errorf("no token provided")
	ErrInvalidToken = fmt.Errorf("invalid token")
	ErrForbidden    = fmt.Errorf("not authorized")

	// Lookup errors
	ErrNotFound = fmt.Errorf("not found")

	// External catalog errors
	ErrInvalidLink = fmt.Errorf("invalid catalog url")
	ErrUpstream    = fmt.Errorf("catalog request failed")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
)
