// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tasklist/config"
	"tasklist/internal/domain/service"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"

	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = time.Hour * 24 * 7
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The two token kinds share a claim shape but are signed with different secrets
// and lifetimes, so one kind can never stand in for the other.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL := defaultAccessTTL
	refreshTTL := defaultRefreshTTL
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateAccessToken signs a short-lived access token for the user.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, s.accessTTL, s.accessSecret, tokenKindAccess)
}

// GenerateRefreshToken signs a long-lived refresh token for the user.
func (s *jwtService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, s.refreshTTL, s.refreshSecret, tokenKindRefresh)
}

// ValidateAccessToken verifies an access token and returns its subject.
func (s *jwtService) ValidateAccessToken(token string) (uuid.UUID, error) {
	return s.validateToken(token, s.accessSecret, tokenKindAccess)
}

// ValidateRefreshToken verifies a refresh token and returns its subject.
func (s *jwtService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	return s.validateToken(token, s.refreshSecret, tokenKindRefresh)
}

// HashToken returns the SHA-256 hex digest of a raw token string.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// generateToken is a private helper to create a JWT with the shared claim shape.
func (s *jwtService) generateToken(userID uuid.UUID, ttl time.Duration, secret, kind string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"type": kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// validateToken checks signature, expiry and kind, classifying failures as
// expired or invalid. Expiry surfaces distinctly so callers can log it, but
// the HTTP layer never leaks the distinction.
func (s *jwtService) validateToken(tokenString, secret, kind string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, service.ErrTokenExpired
		}

		return uuid.Nil, service.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, service.ErrTokenInvalid
	}

	if tokenKind, _ := claims["type"].(string); tokenKind != kind {
		return uuid.Nil, service.ErrTokenInvalid
	}

	subject, _ := claims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, service.ErrTokenInvalid
	}

	return userID, nil
}
