package repo

import (
	"context"
	"errors"

	"github.com/coursehub/backend/internal/models"
)

var ErrDuplicateEnrollment = errors.New("enrollment already exists")

// CreateEnrollment performs the single INSERT that settles the uniqueness
// invariant. Under concurrent enrolls for the same (user, course) pair the
// composite unique index lets exactly one insert through; every loser gets
// ErrDuplicateEnrollment.
func (r *GormRepo) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEnrollment
		}
		return err
	}
	return nil
}

func (r *GormRepo) GetEnrollmentsByUser(ctx context.Context, userID uint) ([]models.Enrollment, error) {
	var items []models.Enrollment
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountEnrollments(ctx context.Context, userID, courseID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).Count(&n).Error
	return n, err
}
