package services

import (
	"expedientes_app_go/models"
	"testing"

	"github.com/google/uuid"
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
	if err := database.AutoMigrate(&models.User{}, &models.LawCase{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func createCase(t *testing.T, database *gorm.DB, code string, creator *models.User) *models.LawCase {
	t.Helper()

	lawCase := &models.LawCase{
		CodigoInterno:    code,
		Caratula:         "Caso " + code,
		Estado:           models.CaseStatusOpen,
		CreatedByID:      creator.ID,
		LastModifiedByID: creator.ID,
	}
	if err := database.Create(lawCase).Error; err != nil {
		t.Fatalf("failed to create test case: %v", err)
	}
	return lawCase
}

func createUser(t *testing.T, database *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{Username: "tester", Password: "x", IsActive: true}
	if err := database.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
