package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/repo"
	"github.com/coursehub/backend/internal/tokens"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var guardSecret = []byte("test-jwt-secret")

func newGuard(t *testing.T) *RoleGuard {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return NewRoleGuard(guardSecret, &repo.GormRepo{DB: db})
}

func createUser(t *testing.T, g *RoleGuard, email string, role models.Role) *models.User {
	t.Helper()

	u := &models.User{Email: email, PasswordHash: "h", Role: role, FirstName: "F", LastName: "L"}
	require.NoError(t, g.Repo.DB.Create(u).Error)
	return u
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()

	token, err := tokens.Issue(guardSecret, strconv.FormatUint(uint64(userID), 10), time.Hour)
	require.NoError(t, err)
	return token
}

func invoke(g *RoleGuard, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, *models.User) {
	e := echo.New()

	var seen *models.User
	handler := mw(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestRequireAuth_MissingOrBadToken(t *testing.T) {
	t.Parallel()

	g := newGuard(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, seen := invoke(g, g.RequireAuth, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, seen)
		})
	}
}

// Every authentication failure carries the same body; the rejection never says
// which check failed.
func TestRequireAuth_UniformRejectionBody(t *testing.T) {
	t.Parallel()

	g := newGuard(t)
	u := createUser(t, g, "gone@x.com", models.RoleStudent)
	staleToken := tokenFor(t, u.ID)
	require.NoError(t, g.Repo.DB.Delete(&models.User{}, u.ID).Error)

	headers := []string{
		"",
		"Basic abc",
		"Bearer not-a-jwt",
		"Bearer " + staleToken,
	}

	var bodies []string
	for _, h := range headers {
		rec, _ := invoke(g, g.RequireAuth, h)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
	assert.Contains(t, bodies[0], MsgUnauthenticated)
}

func TestRequireAuth_ResolvesUser(t *testing.T) {
	t.Parallel()

	g := newGuard(t)
	u := createUser(t, g, "s@x.com", models.RoleStudent)

	rec, seen := invoke(g, g.RequireAuth, "Bearer "+tokenFor(t, u.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, u.ID, seen.ID)
	assert.Equal(t, models.RoleStudent, seen.Role)
}

func TestRequire_RoleGating(t *testing.T) {
	t.Parallel()

	g := newGuard(t)
	student := createUser(t, g, "s@x.com", models.RoleStudent)
	instructor := createUser(t, g, "i@x.com", models.RoleInstructor)
	admin := createUser(t, g, "a@x.com", models.RoleAdmin)

	gate := g.Require(models.RoleInstructor, models.RoleAdmin)

	rec, _ := invoke(g, gate, "Bearer "+tokenFor(t, student.ID))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = invoke(g, gate, "Bearer "+tokenFor(t, instructor.ID))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = invoke(g, gate, "Bearer "+tokenFor(t, admin.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// The role is read fresh per request; a token issued before a promotion opens
// the instructor gate afterwards.
func TestRequire_RoleReadFresh(t *testing.T) {
	t.Parallel()

	g := newGuard(t)
	u := createUser(t, g, "s@x.com", models.RoleStudent)
	token := tokenFor(t, u.ID)

	gate := g.Require(models.RoleInstructor, models.RoleAdmin)

	rec, _ := invoke(g, gate, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	require.NoError(t, g.Repo.DB.Model(&models.User{}).Where("id = ?", u.ID).
		Update("role", models.RoleInstructor).Error)

	rec, _ = invoke(g, gate, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_DeletedUserUnauthenticated(t *testing.T) {
	t.Parallel()

	g := newGuard(t)
	u := createUser(t, g, "gone@x.com", models.RoleStudent)
	token := tokenFor(t, u.ID)

	require.NoError(t, g.Repo.DB.Delete(&models.User{}, u.ID).Error)

	rec, seen := invoke(g, g.RequireAuth, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}
