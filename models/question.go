package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

type Question struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Question   string         `json:"question" gorm:"not null"`
	Answer     string         `json:"answer" gorm:"not null"`
	CategoryID uint           `json:"category" gorm:"not null;index"`
	Difficulty int            `json:"difficulty" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Category *Category `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
