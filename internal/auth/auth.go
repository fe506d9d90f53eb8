// Package auth handles password hashing, bearer token issuance and
// verification, and request-context identity plumbing.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"songblog/internal/shared"
)

// TokenLifetime is how long an issued bearer token remains valid.
const TokenLifetime = time.Hour

// Identity is the decoded token payload exposed to handlers.
type Identity struct {
	ID       string
	Username string
}

// Claims is the JWT claim set carried by issued tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// HashPassword returns a one-way bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a stored bcrypt hash against a candidate password.
// Returns [shared.ErrInvalidLogin] on mismatch; the caller must not leak
// anything more specific.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return shared.ErrInvalidLogin
	}
	return nil
}

// IssueToken signs an HS256 JWT carrying the user's id and username,
// expiring [TokenLifetime] from now.
func IssueToken(secret, userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a bearer token's signature and expiry and returns the
// identity it encodes. Failures wrap [shared.ErrInvalidToken].
func ParseToken(secret, tokenString string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, shared.ErrInvalidToken
	}

	return Identity{ID: claims.Subject, Username: claims.Username}, nil
}

type ctxKeyIdentity struct{}

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, ident)
}

// IdentityFrom extracts the authenticated identity from the context.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(ctxKeyIdentity{}).(Identity)
	return ident, ok && ident.ID != ""
}
