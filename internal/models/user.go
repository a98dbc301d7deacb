package models

import (
	"strings"
	"time"
)

type User struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	WorkshopID uint     `json:"workshop_id"`
	Workshop   Workshop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"workshop"`

	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
