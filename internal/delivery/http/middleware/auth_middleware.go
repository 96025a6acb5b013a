package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/service"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
// Every rejection uses the same generic body so the response does not reveal
// why the token was refused.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token format, must be Bearer token")
		}

		payload, err := m.tokenSvc.VerifyAccess(tokenString)
		if err != nil {
			return response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
		}

		deliverycontext.SetUserID(c, payload.UserID)

		return next(c)
	}
}
