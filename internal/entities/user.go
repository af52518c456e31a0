package entities

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Fullname     string    `gorm:"size:256" json:"fullname"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"` // bcrypt hash, hidden from JSON
	CreatedAt    time.Time `json:"registration_date"`
	UpdatedAt    time.Time `json:"-"`
}
