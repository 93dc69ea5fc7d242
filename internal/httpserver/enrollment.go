package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coursehub/backend/internal/logging"
	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/service"
	"github.com/coursehub/backend/internal/transport"
	"github.com/labstack/echo/v4"
)

type EnrollmentHTTP struct {
	Svc *service.EnrollmentService
}

func (h *EnrollmentHTTP) Enroll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enroll")

	var req transport.EnrollRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("enroll_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgUnauthenticated)
	}

	enrollment, err := h.Svc.Enroll(ctx, user.ID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "already enrolled")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot enroll")
		}
	}

	l.Info("enrolled", "user_id", user.ID, "course_id", req.CourseID)
	return c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHTTP) ListByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enrollments_by_user")

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "userId must be a positive integer")
	}

	items, err := h.Svc.ListByUser(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("enrollments_list_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list enrollments")
	}

	return c.JSON(http.StatusOK, items)
}
