package middleware

import (
	"expedientes_app_go/config"
	"expedientes_app_go/db"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared&_busy_timeout=5000"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.DB = database
	return database
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWTSecret:   "test-secret-0123456789-0123456789",
	}
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newContext(method string, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuth(t *testing.T) {
	database := setupTestDB(t)
	cfg := testConfig()

	user := &models.User{Username: "abogado", Password: "x", IsActive: true}
	assert.NoError(t, database.Create(user).Error)

	token, err := services.GenerateAccessToken(cfg.JWTSecret, user.ID, user.Username, false)
	assert.NoError(t, err)

	t.Run("Valid token resolves the user", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "Bearer "+token)

		handlerErr := RequireAuth(cfg)(func(c echo.Context) error {
			current := GetCurrentUser(c)
			assert.NotNil(t, current)
			assert.Equal(t, user.ID, current.ID)
			return okHandler(c)
		})(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing header", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "")

		handlerErr := RequireAuth(cfg)(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "Token "+token)

		handlerErr := RequireAuth(cfg)(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "Bearer not.a.token")

		handlerErr := RequireAuth(cfg)(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Refresh token rejected on access routes", func(t *testing.T) {
		refresh, err := services.GenerateRefreshToken(cfg.JWTSecret, user.ID, user.Username, false)
		assert.NoError(t, err)
		c, rec := newContext(http.MethodGet, "Bearer "+refresh)

		handlerErr := RequireAuth(cfg)(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Deactivated user", func(t *testing.T) {
		assert.NoError(t, database.Model(user).Update("is_active", false).Error)
		defer database.Model(user).Update("is_active", true)

		c, rec := newContext(http.MethodGet, "Bearer "+token)

		handlerErr := RequireAuth(cfg)(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Deleted user", func(t *testing.T) {
		ghost := &models.User{Username: "fantasma", Password: "x", IsActive: true}
		assert.NoError(t, database.Create(ghost).Error)
		ghostToken, err := services.GenerateAccessToken(cfg.JWTSecret, ghost.ID, ghost.Username, false)
		assert.NoError(t, err)
		assert.NoError(t, database.Unscoped().Delete(ghost).Error)

		c, rec := newContext(http.MethodGet, "Bearer "+ghostToken)

		handlerErr := RequireAuth(cfg)(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("Admin passes", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "")
		c.Set(ContextKeyUser, &models.User{Username: "admin", IsAdmin: true})

		handlerErr := RequireAdmin()(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Regular user forbidden", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "")
		c.Set(ContextKeyUser, &models.User{Username: "abogado", IsAdmin: false})

		handlerErr := RequireAdmin()(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("No user forbidden", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "")

		handlerErr := RequireAdmin()(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireAdminForWrites(t *testing.T) {
	regular := &models.User{Username: "abogado", IsAdmin: false}
	admin := &models.User{Username: "admin", IsAdmin: true}

	t.Run("Regular user can read", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "")
		c.Set(ContextKeyUser, regular)

		handlerErr := RequireAdminForWrites()(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Regular user cannot write", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			c, rec := newContext(method, "")
			c.Set(ContextKeyUser, regular)

			handlerErr := RequireAdminForWrites()(okHandler)(c)
			assert.NoError(t, handlerErr)
			assert.Equal(t, http.StatusForbidden, rec.Code, method)
		}
	})

	t.Run("Admin can write", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "")
		c.Set(ContextKeyUser, admin)

		handlerErr := RequireAdminForWrites()(okHandler)(c)
		assert.NoError(t, handlerErr)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
