package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"` // Not show in JSON
	IsActive     bool      `gorm:"default:true;not null" json:"is_active"`          // inactive accounts cannot authenticate
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationship to sneezes
	Sneezes []Sneeze `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
