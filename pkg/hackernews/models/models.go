package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: User must be migrated first as Link references it
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Link{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
