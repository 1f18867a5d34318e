// Package middleware contains the HTTP middleware for the application.
package middleware

import (
	"strings"

	deliverycontext "tasklist/internal/delivery/context"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the subject user
// ID on the request context. An expired token fails the same way as an
// invalid one so the response never reveals which it was.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.WithStack(domainerrors.ErrMissingToken)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return errors.WithStack(domainerrors.ErrMissingToken)
		}

		userID, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return errors.WithStack(domainerrors.ErrTokenNotValid)
		}

		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}
