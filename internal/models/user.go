package models

import "time"

// User - учетная запись для админки. Пароль в JSON никогда не отдается.
type User struct {
	BaseModel
	Name         string     `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role" validate:"required,is-user-role"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
