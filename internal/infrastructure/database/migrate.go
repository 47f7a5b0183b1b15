package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Subscription{},
		&model.Payment{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes GORM does not handle automatically.
func createCustomIndexes(db *gorm.DB) error {
	// At most one settled purchase per user and course. Concurrent
	// CreatePayment calls that both pass the already-paid check cannot
	// both settle; the second insert or update fails with a duplicate key.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_user_course_paid ON payments (user_id, course_id) WHERE status = 'paid'`).Error; err != nil {
		return err
	}

	// Pending payments are what the reconciliation endpoints look up.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_pending ON payments (created_at) WHERE status = 'pending'`).Error; err != nil {
		return err
	}

	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}
