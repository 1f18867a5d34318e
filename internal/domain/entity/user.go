// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a single registered account.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, stable for its lifetime.
	Username     string    // The unique, case-sensitive login name.
	PasswordHash string    // The bcrypt-hashed password. Never the plaintext.
	// RefreshTokenHash stores the SHA-256 hash of the user's single live
	// refresh token. Nil means no active session. It is overwritten on every
	// login and cleared on logout, so at most one refresh token is usable
	// per user at any time.
	RefreshTokenHash *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasActiveSession reports whether the user currently holds a live refresh token.
func (u *User) HasActiveSession() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}
