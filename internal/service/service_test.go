package service

import (
	"testing"

	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/repo"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestRepo opens an in-memory sqlite database. The pool is clamped to one
// connection so concurrent callers share the same database and the unique
// indexes arbitrate races the way the postgres constraint does.
func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))

	return &repo.GormRepo{DB: db}
}
