package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables backing every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Category{}, &Question{})
}
