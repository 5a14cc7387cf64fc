package models

import (
	"time"

	"gorm.io/datatypes"
)

type ContactNote struct {
	Note    string    `json:"note"`
	AddedBy string    `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

// Contact - обращение из формы обратной связи.
type Contact struct {
	BaseModel
	Name       string                           `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Email      string                           `gorm:"size:255;not null;index" json:"email" validate:"required,email"`
	Phone      string                           `gorm:"size:50;not null" json:"phone" validate:"required"`
	Company    string                           `gorm:"size:100" json:"company,omitempty" validate:"max=100"`
	Subject    string                           `gorm:"size:255;not null" json:"subject" validate:"required"`
	Message    string                           `gorm:"type:text;not null" json:"message" validate:"required,max=2000"`
	Status     ContactStatus                    `gorm:"type:varchar(20);not null;index" json:"status" validate:"required,is-contact-status"`
	Priority   ContactPriority                  `gorm:"type:varchar(20);not null;index" json:"priority" validate:"required,is-contact-priority"`
	AssignedTo *string                          `gorm:"type:uuid;index" json:"assignedTo,omitempty"`
	IsRead     bool                             `gorm:"not null" json:"isRead"`
	Notes      datatypes.JSONSlice[ContactNote] `json:"notes"`
}
