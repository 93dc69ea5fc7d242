package seed

import (
	"context"
	"testing"

	"github.com/coursehub/backend/internal/hash"
	"github.com/coursehub/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))
	return db
}

func TestDevData_SeedsAllRoles(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, DevData(ctx, db))

	var users []models.User
	require.NoError(t, db.Order("id ASC").Find(&users).Error)
	require.Len(t, users, 3)

	byRole := map[models.Role]models.User{}
	for _, u := range users {
		byRole[u.Role] = u
	}
	assert.Equal(t, "admin@example.com", byRole[models.RoleAdmin].Email)
	assert.Equal(t, "instructor@example.com", byRole[models.RoleInstructor].Email)
	assert.Equal(t, "student@example.com", byRole[models.RoleStudent].Email)

	for _, u := range users {
		assert.True(t, hash.CheckPassword(u.PasswordHash, "password"), u.Email)
	}

	var courses []models.Course
	require.NoError(t, db.Find(&courses).Error)
	require.Len(t, courses, 2)
	for _, c := range courses {
		assert.Equal(t, byRole[models.RoleInstructor].ID, c.InstructorID)
	}
}

func TestDevData_NoOpWhenUsersPresent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	existing := models.User{Email: "real@x.com", PasswordHash: "h", Role: models.RoleStudent, FirstName: "R", LastName: "U"}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, DevData(ctx, db))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
