package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the run-history database. A postgres:// DSN uses the
// postgres driver; anything else is treated as a sqlite file path.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var db *gorm.DB
	var err error
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate runs database migrations for the run-history models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&AnalysisRun{}, &AlarmCount{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Println("Run-history migrations applied")
	return nil
}
