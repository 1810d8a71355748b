package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platebook/recipe-api/internal/core/domain"
)

// RBAC enforces role-based access control over the identity injected by
// Auth. Running it on a route without Auth is a wiring bug, not a client
// error: it fails with 500 rather than silently proceeding.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextKeyUser).(*domain.User)
			if !ok || user == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "authorization requires authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("role %s is not authorized to access this route", user.Role))
			}
			return next(c)
		}
	}
}
