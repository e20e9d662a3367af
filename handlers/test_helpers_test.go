package handlers

import (
	"expedientes_app_go/config"
	"expedientes_app_go/db"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.LawCase{},
		&models.CaseActuacion{},
		&models.CaseAlerta{},
		&models.CaseNote{},
	)
	assert.NoError(t, err)

	// Set global DB and handler config
	db.DB = testDB
	SetConfig(testConfig())

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return e, c, rec
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		JWTSecret:     "test-secret-0123456789-0123456789",
		EmailTestMode: true,
	}
}

func createTestUser(t *testing.T, database *gorm.DB, username string, isAdmin bool) *models.User {
	hash, err := services.HashPassword("password123")
	assert.NoError(t, err)

	user := &models.User{
		Username: username,
		Password: hash,
		IsAdmin:  isAdmin,
		IsStaff:  isAdmin,
		IsActive: true,
	}
	assert.NoError(t, database.Create(user).Error)
	return user
}

func createTestCase(t *testing.T, database *gorm.DB, code, caratula string, creator *models.User) *models.LawCase {
	lawCase := &models.LawCase{
		CodigoInterno:    code,
		Caratula:         caratula,
		Estado:           models.CaseStatusOpen,
		CreatedByID:      creator.ID,
		LastModifiedByID: creator.ID,
	}
	assert.NoError(t, database.Create(lawCase).Error)
	return lawCase
}
