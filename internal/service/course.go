package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/coursehub/backend/internal/events"
	"github.com/coursehub/backend/internal/logging"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/repo"
	"github.com/coursehub/backend/internal/search"
	"github.com/coursehub/backend/internal/transport"
	"gorm.io/gorm"
)

type CourseService struct {
	Repo   *repo.GormRepo
	Index  *search.CourseIndex
	Events *events.Producer
}

func (s *CourseService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.Repo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", ErrNotFound, id)
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourses(ctx context.Context, offset, limit int) (int64, []models.Course, error) {
	return s.Repo.GetCourses(ctx, offset, limit)
}

func (s *CourseService) CreateCourse(ctx context.Context, req transport.CourseRequest, instructorID uint) (*models.Course, error) {
	l := logging.FromContext(ctx).With("svc", "course.create")

	if err := validateCourse(req); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		InstructorID: instructorID,
	}
	if err := s.Repo.CreateCourse(ctx, course); err != nil {
		l.Error("course_create_failed", "status", 500, "error", err)
		return nil, err
	}

	s.afterMutation(ctx, events.TypeCourseCreated, course)
	return course, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, id uint, req transport.CourseRequest) (*models.Course, error) {
	l := logging.FromContext(ctx).With("svc", "course.update", "course_id", id)

	if err := validateCourse(req); err != nil {
		return nil, err
	}

	course, err := s.Repo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", ErrNotFound, id)
		}
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Price = req.Price

	if err := s.Repo.SaveCourse(ctx, course); err != nil {
		l.Error("course_update_failed", "status", 500, "error", err)
		return nil, err
	}

	s.afterMutation(ctx, events.TypeCourseUpdated, course)
	return course, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "course.delete", "course_id", id)

	if err := s.Repo.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: course %d", ErrNotFound, id)
		}
		return err
	}

	if err := s.Index.DeleteCourse(ctx, id); err != nil {
		l.Warn("index_delete_failed", "error", err)
	}
	if err := s.Events.Publish(ctx, events.TypeCourseDeleted, strconv.FormatUint(uint64(id), 10), map[string]any{
		"course_id": id,
	}); err != nil {
		l.Warn("event_publish_failed", "event", events.TypeCourseDeleted, "error", err)
	}
	return nil
}

func (s *CourseService) SearchCourses(ctx context.Context, query string, from, size int) (int64, []search.CourseHit, error) {
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	return s.Index.Search(ctx, query, from, size)
}

func validateCourse(req transport.CourseRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title required", ErrValidation)
	}
	if req.Description == "" {
		return fmt.Errorf("%w: description required", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}

// afterMutation keeps the search index and event stream in step with the
// catalog. Both are best-effort: failures are logged, never surfaced.
func (s *CourseService) afterMutation(ctx context.Context, eventType string, course *models.Course) {
	l := logging.FromContext(ctx).With("svc", "course")

	if err := s.Index.IndexCourse(ctx, course); err != nil {
		l.Warn("index_update_failed", "course_id", course.ID, "error", err)
	}
	if err := s.Events.Publish(ctx, eventType, strconv.FormatUint(uint64(course.ID), 10), map[string]any{
		"course_id": course.ID,
		"title":     course.Title,
	}); err != nil {
		l.Warn("event_publish_failed", "event", eventType, "error", err)
	}
}
