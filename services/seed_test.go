package services

import (
	"expedientes_app_go/config"
	"expedientes_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedAdminUser(t *testing.T) {
	database := setupTestDB(t)
	cfg := &config.Config{AdminUsername: "admin", AdminPassword: "inicial123"}

	t.Run("Seeds on empty database", func(t *testing.T) {
		assert.NoError(t, SeedAdminUser(database, cfg))

		var admin models.User
		assert.NoError(t, database.First(&admin, "username = ?", "admin").Error)
		assert.True(t, admin.IsAdmin)
		assert.True(t, admin.IsStaff)
		assert.True(t, admin.IsActive)
		assert.True(t, admin.IsProtected)
		assert.True(t, VerifyPassword(admin.Password, "inicial123"))
	})

	t.Run("Does nothing when users exist", func(t *testing.T) {
		assert.NoError(t, SeedAdminUser(database, cfg))

		var count int64
		database.Model(&models.User{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestSeedAdminUserGeneratesPassword(t *testing.T) {
	database := setupTestDB(t)
	cfg := &config.Config{AdminUsername: "admin"}

	assert.NoError(t, SeedAdminUser(database, cfg))

	var admin models.User
	assert.NoError(t, database.First(&admin, "username = ?", "admin").Error)
	// Whatever was generated, it is never stored in the clear
	assert.False(t, VerifyPassword(admin.Password, ""))
	assert.NotEmpty(t, admin.Password)
}
