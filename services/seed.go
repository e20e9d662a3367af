package services

import (
	"expedientes_app_go/config"
	"expedientes_app_go/models"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// SeedAdminUser creates the initial admin account on an empty database.
// The account is flagged as protected so the user management endpoints can
// never list, modify or delete it.
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := cfg.AdminPassword
	generated := false
	if password == "" {
		password = config.GenerateSecureSecret()
		generated = true
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:    cfg.AdminUsername,
		Password:    hash,
		IsAdmin:     true,
		IsStaff:     true,
		IsActive:    true,
		IsProtected: true,
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if generated {
		log.Printf("Seeded admin user %q with generated password: %s", admin.Username, password)
	} else {
		log.Printf("Seeded admin user %q", admin.Username)
	}
	return nil
}
