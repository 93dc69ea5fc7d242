package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coursehub/backend/internal/logging"
	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/service"
	"github.com/coursehub/backend/internal/transport"
	"github.com/coursehub/backend/internal/util"
	"github.com/labstack/echo/v4"
)

type CourseHTTP struct {
	Svc *service.CourseService
}

func courseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}

func (h *CourseHTTP) GetCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_get")

	id, err := courseID(c)
	if err != nil {
		return err
	}

	course, err := h.Svc.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("course_get_failed", "status", 404, "course_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "course not found")
		}
		l.Error("course_get_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get course")
	}

	return c.JSON(http.StatusOK, course)
}

func (h *CourseHTTP) GetCourses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetCourses(ctx, offset, limit)
	if err != nil {
		l.Error("course_list_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list courses")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *CourseHTTP) SearchCourses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_search")

	q := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, hits, err := h.Svc.SearchCourses(ctx, q, offset, limit)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "query required")
		}
		l.Error("course_search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search unavailable")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": hits,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *CourseHTTP) CreateCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_create")

	var req transport.CourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("course_create_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	instructor := middleware.CurrentUser(c)
	if instructor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgUnauthenticated)
	}

	course, err := h.Svc.CreateCourse(ctx, req, instructor.ID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("course_create_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("course_create_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create course")
	}

	l.Info("course_created", "course_id", course.ID)
	return c.JSON(http.StatusCreated, course)
}

func (h *CourseHTTP) UpdateCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_update")

	id, err := courseID(c)
	if err != nil {
		return err
	}

	var req transport.CourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("course_update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	course, err := h.Svc.UpdateCourse(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("course_update_failed", "status", 404, "course_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "course not found")
		default:
			l.Error("course_update_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update course")
		}
	}

	return c.JSON(http.StatusOK, course)
}

func (h *CourseHTTP) DeleteCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course_delete")

	id, err := courseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("course_delete_failed", "status", 404, "course_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "course not found")
		}
		l.Error("course_delete_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete course")
	}

	return c.NoContent(http.StatusNoContent)
}
