package db

import (
	"fmt"

	"github.com/pravinpanwar/impulse/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Goal{},
		&models.Task{},
		&models.Daily{},
		&models.DailyHistory{},
		&models.Note{},
		&models.UserStats{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
