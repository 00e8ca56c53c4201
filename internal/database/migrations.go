package database

import (
	"rutinas/internal/models"
	"rutinas/pkg/logger"
)

// MigrateModels creates or updates the schema for every model
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []any{
		&models.Rutina{},
		&models.Ejercicio{},
	}

	// Migrated together so gorm orders the tables by their foreign keys.
	if err := db.SQL.AutoMigrate(modelsToMigrate...); err != nil {
		return log.Err("Failed to migrate models", err)
	}

	log.Info("Database migration completed successfully")
	return nil
}
