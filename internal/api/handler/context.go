package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platebook/recipe-api/internal/api/middleware"
	"github.com/platebook/recipe-api/internal/core/domain"
	"github.com/platebook/recipe-api/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware. Its
// absence on a route that reaches this point means the gate was not wired;
// fail before any service call rather than attributing the mutation to
// nobody.
func ctxActor(c echo.Context) (ports.Actor, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: user.ID, Role: user.Role}, nil
}
