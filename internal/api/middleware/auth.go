package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/platebook/recipe-api/internal/core/ports"
	"github.com/platebook/recipe-api/internal/core/service"
)

// Context keys populated by Auth.
const (
	ContextKeyUser = "user"
	ContextKeyRole = "role"
)

// Auth resolves the request's identity from its bearer token and injects it
// into the echo context. All token verification failures produce the same
// 401 "invalid token" so clients cannot tell a malformed token from an
// expired or forged one.
func Auth(codec *service.TokenCodec, users ports.AuthRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subjectID, err := codec.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// Covers deleted or deactivated accounts holding live tokens.
			user, err := users.FindByID(c.Request().Context(), subjectID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyRole, user.Role)

			return next(c)
		}
	}
}
