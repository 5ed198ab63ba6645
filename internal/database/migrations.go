package database

import (
	"kardetailing/internal/models"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Booking{},
		&models.Feedback{},
	}
}

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := db.log.Function("MigrateModels")
	log.Info("Starting database migration")

	for _, model := range Models() {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}
