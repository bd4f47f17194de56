package database

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations executes all database migrations
func RunMigrations(db *gorm.DB) error {
	// Create indexes for better performance
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates database indexes
func createIndexes(db *gorm.DB) error {
	// Index for listing the audit log newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_query_logs_time
		ON query_logs(query_time)
	`).Error; err != nil {
		return err
	}

	// Index for per-endpoint lookups
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_query_logs_endpoint
		ON query_logs(endpoint, success)
	`).Error; err != nil {
		return err
	}

	return nil
}
