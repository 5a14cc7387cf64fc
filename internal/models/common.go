package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel содержит общие поля всех сущностей.
// ID генерируется в приложении, а не в БД, чтобы не зависеть от расширений Postgres.
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate проставляет UUID, если он не задан явно.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels возвращает список моделей для AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Job{},
		&Application{},
		&Blog{},
		&Comment{},
		&Contact{},
	}
}
