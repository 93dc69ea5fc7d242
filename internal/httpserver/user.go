package httpserver

import (
	"net/http"

	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/transport"
	"github.com/labstack/echo/v4"
)

type UserHTTP struct{}

// Profile returns the caller's own record. The identity comes exclusively from
// the guard; no caller-supplied id is trusted.
func (h *UserHTTP) Profile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgUnauthenticated)
	}
	return c.JSON(http.StatusOK, transport.ProjectUser(user))
}
