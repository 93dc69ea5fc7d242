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
	"gorm.io/gorm"
)

type EnrollmentService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// Enroll creates the single enrollment record for (userID, courseID). The
// course-existence check runs first; the uniqueness decision is left entirely
// to the composite unique index, so a race between identical requests resolves
// to one success and Conflict for the rest. There is deliberately no
// exists-then-insert pre-check on the pair.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	l := logging.FromContext(ctx).With("svc", "enrollment.enroll", "user_id", userID, "course_id", courseID)

	if courseID == 0 {
		return nil, fmt.Errorf("%w: course_id required", ErrValidation)
	}

	ok, err := s.Repo.CourseExists(ctx, courseID)
	if err != nil {
		l.Error("enroll_failed", "status", 500, "error", err)
		return nil, err
	}
	if !ok {
		l.Warn("enroll_failed", "status", 404, "reason", "course not found")
		return nil, fmt.Errorf("%w: course %d", ErrNotFound, courseID)
	}

	enrollment := &models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.Repo.CreateEnrollment(ctx, enrollment); err != nil {
		if errors.Is(err, repo.ErrDuplicateEnrollment) {
			l.Warn("enroll_failed", "status", 409, "reason", "already enrolled")
			return nil, fmt.Errorf("%w: already enrolled", ErrConflict)
		}
		l.Error("enroll_failed", "status", 500, "error", err)
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TypeUserEnrolled, strconv.FormatUint(uint64(userID), 10), map[string]any{
		"user_id":   userID,
		"course_id": courseID,
	}); err != nil {
		l.Warn("event_publish_failed", "event", events.TypeUserEnrolled, "error", err)
	}

	return enrollment, nil
}

func (s *EnrollmentService) ListByUser(ctx context.Context, userID uint) ([]models.Enrollment, error) {
	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return s.Repo.GetEnrollmentsByUser(ctx, userID)
}
