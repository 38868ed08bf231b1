package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        string                `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name      string                `gorm:"size:255;not null"`
	Email     string                `gorm:"size:100;not null;uniqueIndex"`
	Password  string                `gorm:"size:255;not null"`
	Tokens    []PersonalAccessToken `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser expects an already hashed password.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
