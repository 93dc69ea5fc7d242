package seed

import (
	"context"

	"github.com/coursehub/backend/internal/hash"
	"github.com/coursehub/backend/internal/logging"
	"github.com/coursehub/backend/internal/models"
	"gorm.io/gorm"
)

// DevData seeds demo accounts and courses into an empty database. Intended for
// local development only; a non-empty user table makes it a no-op.
func DevData(ctx context.Context, db *gorm.DB) error {
	l := logging.FromContext(ctx).With("svc", "seed")

	var n int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		l.Info("seed_skipped", "reason", "users already present")
		return nil
	}

	pwHash, err := hash.Password("password")
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        "admin@example.com",
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
		FirstName:    "Ada",
		LastName:     "Root",
	}
	instructor := models.User{
		Email:        "instructor@example.com",
		PasswordHash: pwHash,
		Role:         models.RoleInstructor,
		FirstName:    "Jane",
		LastName:     "Doe",
	}
	student := models.User{
		Email:        "student@example.com",
		PasswordHash: pwHash,
		Role:         models.RoleStudent,
		FirstName:    "John",
		LastName:     "Smith",
	}

	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&instructor).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&student).Error; err != nil {
		return err
	}

	courses := []models.Course{
		{
			Title:        "Go Fundamentals",
			Description:  "Learn Go by building RESTful APIs.",
			Price:        49.99,
			InstructorID: instructor.ID,
		},
		{
			Title:        "React with TypeScript",
			Description:  "Master React and TS with hands-on projects.",
			Price:        59.99,
			InstructorID: instructor.ID,
		},
	}
	if err := db.WithContext(ctx).Create(&courses).Error; err != nil {
		return err
	}

	l.Info("seed_done", "admin", admin.Email, "instructor", instructor.Email, "student", student.Email, "courses", len(courses))
	return nil
}
