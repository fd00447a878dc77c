package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pincheck/internal/models"
)

// InitDB opens the postgres connection backing the document store and
// migrates the record tables.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.PincodeDetail{}, &models.PincodeCheck{}); err != nil {
		return nil, fmt.Errorf("failed to migrate record tables: %w", err)
	}

	return db, nil
}
