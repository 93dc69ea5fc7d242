package httpserver

import (
	"net/http"

	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/models"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler       *AuthHTTP
	UserHandler       *UserHTTP
	CourseHandler     *CourseHTTP
	EnrollmentHandler *EnrollmentHTTP
	Guard             *middleware.RoleGuard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/signup", d.AuthHandler.Signup)
	api.POST("/auth/login", d.AuthHandler.Login)

	api.GET("/users/profile", d.UserHandler.Profile, d.Guard.RequireAuth)

	courses := api.Group("/courses")
	courses.GET("", d.CourseHandler.GetCourses)
	courses.GET("/search", d.CourseHandler.SearchCourses)
	courses.GET("/:id", d.CourseHandler.GetCourse)

	// ADMIN appears explicitly in every gated set; there is no role hierarchy.
	teaching := courses.Group("", d.Guard.Require(models.RoleInstructor, models.RoleAdmin))
	teaching.POST("", d.CourseHandler.CreateCourse)
	teaching.PUT("/:id", d.CourseHandler.UpdateCourse)
	teaching.DELETE("/:id", d.CourseHandler.DeleteCourse)

	courses.POST("/enroll", d.EnrollmentHandler.Enroll, d.Guard.Require(models.RoleStudent, models.RoleAdmin))

	api.GET("/enrollments/user/:userId", d.EnrollmentHandler.ListByUser, d.Guard.RequireAuth)
}
