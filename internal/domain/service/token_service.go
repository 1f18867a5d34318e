package service

import (
	"errors"

	"github.com/google/uuid"
)

// Token validation failures are classified so callers can decide how much
// to reveal. The HTTP layer surfaces both identically as unauthenticated.
var (
	// ErrTokenExpired is returned when a token's signature is valid but its
	// expiry has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for any other verification failure: bad
	// signature, wrong kind, malformed structure.
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenService defines the interface for issuing and verifying the two token
// kinds. Access tokens authorize individual requests; refresh tokens mint new
// access tokens and are persisted server-side (hashed) for invalidation.
type TokenService interface {
	// GenerateAccessToken signs a short-lived access token for the user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// GenerateRefreshToken signs a long-lived refresh token for the user.
	GenerateRefreshToken(userID uuid.UUID) (string, error)

	// ValidateAccessToken verifies signature, expiry and kind against the
	// access secret and returns the subject user ID.
	ValidateAccessToken(token string) (uuid.UUID, error)

	// ValidateRefreshToken verifies signature, expiry and kind against the
	// refresh secret and returns the subject user ID. Callers must still
	// match the token against the stored per-user value; a token that
	// verifies cryptographically but was rotated or logged out is dead.
	ValidateRefreshToken(token string) (uuid.UUID, error)

	// HashToken returns the SHA-256 hex digest of a raw token, the form in
	// which refresh tokens are stored server-side.
	HashToken(token string) string
}
