package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/portal/internal/api/middleware"
	"github.com/agriconnect/portal/internal/core/domain"
)

// sessionFrom extracts the session injected by the session middleware. Its
// absence means the route was wired without the middleware, which is a
// programming error surfaced as a 500.
func sessionFrom(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.ContextKey).(*domain.Session)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "missing session")
	}
	return sess, nil
}
