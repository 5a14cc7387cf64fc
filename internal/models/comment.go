package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reply - ответ администратора, хранится внутри комментария.
type Reply struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Comment   string    `json:"comment"`
	RepliedAt time.Time `json:"repliedAt"`
}

type Comment struct {
	BaseModel
	BlogID  string                     `gorm:"type:uuid;not null;index" json:"blog" validate:"required"`
	Name    string                     `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Email   string                     `gorm:"size:255;not null;index" json:"email" validate:"required,email"`
	Comment string                     `gorm:"type:text;not null" json:"comment" validate:"required,max=1000"`
	Rating  int                        `gorm:"not null" json:"rating" validate:"min=1,max=5"`
	Status  CommentStatus              `gorm:"type:varchar(20);not null;index" json:"status" validate:"required,is-comment-status"`
	Replies datatypes.JSONSlice[Reply] `json:"replies"`
}
