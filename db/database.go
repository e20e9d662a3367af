// Package db owns the process-wide GORM handle for the expedientes store.
// The whole firm runs on one sqlite file; WAL mode plus a busy timeout lets
// the HTTP handlers and the async email sender share it without write locks
// surfacing as errors.
package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the sqlite file at path. SQL statements are only logged
// when they fail; request-level logging is the router's job.
func Open(path string) error {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to open expedientes database: %w", err)
	}

	log.Printf("Expedientes database ready at %s (WAL mode)", path)
	return nil
}

// AutoMigrate creates or updates the tables for the given models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not opened")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate expedientes schema: %w", err)
	}
	return nil
}

// Close releases the underlying sqlite connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
