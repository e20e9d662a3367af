package services

import (
	"expedientes_app_go/models"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GenerateCaseCode generates the internal code for a new case.
// Format: ENT-{sequence:04d}-{year}-JLCA
// Example: ENT-0003-2024-JLCA
// The sequence is the total number of cases ever created plus one; soft-deleted
// cases keep their slot so codes are never reused.
func GenerateCaseCode(db *gorm.DB) (string, error) {
	var count int64
	if err := db.Unscoped().Model(&models.LawCase{}).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count cases: %w", err)
	}

	year := time.Now().Year()
	return fmt.Sprintf("ENT-%04d-%d-JLCA", count+1, year), nil
}

// EnsureUniqueCaseCode generates a unique case code with retry logic.
// The unique index on codigo_interno is the backstop for the race between two
// concurrent creates reading the same count; on collision the count is
// re-derived and the code rebuilt.
func EnsureUniqueCaseCode(db *gorm.DB) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		code, err := GenerateCaseCode(db)
		if err != nil {
			return "", err
		}

		// Check if the code is already taken
		var count int64
		if err := db.Unscoped().Model(&models.LawCase{}).Where("codigo_interno = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check case code uniqueness: %w", err)
		}

		if count == 0 {
			return code, nil
		}

		// Collision detected, retry
	}

	return "", fmt.Errorf("failed to generate unique case code after %d retries", maxRetries)
}
