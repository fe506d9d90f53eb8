package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// User represents an account record. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser constructs a User with normalized email and creation timestamps set.
func NewUser(email, username, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        strings.TrimSpace(strings.ToLower(email)),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) Key() string        { return u.ID }
func (u *User) Created() time.Time { return u.CreatedAt }

// Validate checks required fields and email shape.
func (u *User) Validate() error {
	if u.Email == "" || u.Username == "" || u.PasswordHash == "" {
		return fmt.Errorf("email, username, and password are required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("invalid email address: %s", u.Email)
	}
	return nil
}
