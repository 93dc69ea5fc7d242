package service

import (
	"context"
	"testing"

	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseService(t *testing.T) (*CourseService, uint) {
	t.Helper()

	svc := &CourseService{Repo: newTestRepo(t)}
	instructor := models.User{Email: "i@x.com", PasswordHash: "h", Role: models.RoleInstructor, FirstName: "I", LastName: "N"}
	require.NoError(t, svc.Repo.DB.Create(&instructor).Error)
	return svc, instructor.ID
}

func TestCourse_CreateGetUpdateDelete(t *testing.T) {
	t.Parallel()

	svc, instructorID := newCourseService(t)
	ctx := context.Background()

	created, err := svc.CreateCourse(ctx, transport.CourseRequest{Title: "Go", Description: "basics", Price: 49.99}, instructorID)
	require.NoError(t, err)
	assert.Equal(t, instructorID, created.InstructorID)

	got, err := svc.GetCourse(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Title)

	updated, err := svc.UpdateCourse(ctx, created.ID, transport.CourseRequest{Title: "Go 2", Description: "more", Price: 59.99})
	require.NoError(t, err)
	assert.Equal(t, "Go 2", updated.Title)
	assert.Equal(t, 59.99, updated.Price)

	require.NoError(t, svc.DeleteCourse(ctx, created.ID))

	_, err = svc.GetCourse(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourse_Validation(t *testing.T) {
	t.Parallel()

	svc, instructorID := newCourseService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CourseRequest
	}{
		{name: "empty title", req: transport.CourseRequest{Description: "d", Price: 1}},
		{name: "empty description", req: transport.CourseRequest{Title: "t", Price: 1}},
		{name: "negative price", req: transport.CourseRequest{Title: "t", Description: "d", Price: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCourse(ctx, tt.req, instructorID)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCourse_UpdateDeleteNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newCourseService(t)
	ctx := context.Background()

	_, err := svc.UpdateCourse(ctx, 9999, transport.CourseRequest{Title: "t", Description: "d", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteCourse(ctx, 9999), ErrNotFound)
}

func TestCourse_List(t *testing.T) {
	t.Parallel()

	svc, instructorID := newCourseService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.CreateCourse(ctx, transport.CourseRequest{Title: title, Description: "d", Price: 1}, instructorID)
		require.NoError(t, err)
	}

	total, items, err := svc.GetCourses(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)
}
