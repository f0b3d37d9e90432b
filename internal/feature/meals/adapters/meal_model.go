// Package adapters provides repository implementations for the meals feature.
package adapters

import (
	"time"

	"github.com/google/uuid"

	"diet_backend/internal/feature/meals/domain/entity"
)

// MealModel is the GORM model for the meals table.
type MealModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	DateTime    string    `gorm:"column:date_time;not null"`
	InOrOut     string    `gorm:"column:in_or_out;size:16;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
}

// TableName returns the table name for GORM.
func (MealModel) TableName() string {
	return "meals"
}

// ToEntity converts the GORM model to a domain entity.
func (m *MealModel) ToEntity() *entity.Meal {
	return &entity.Meal{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		DateTime:    m.DateTime,
		InOrOut:     m.InOrOut,
		CreatedAt:   m.CreatedAt,
	}
}

// MealModelFromEntity converts a domain entity to a GORM model.
func MealModelFromEntity(m *entity.Meal) *MealModel {
	return &MealModel{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		DateTime:    m.DateTime,
		InOrOut:     m.InOrOut,
		CreatedAt:   m.CreatedAt,
	}
}
