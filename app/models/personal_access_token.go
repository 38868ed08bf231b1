package models

import (
	"time"

	"github.com/google/uuid"
)

// PersonalAccessToken is a bearer token issued on login. The plain token is
// "<selector>.<verifier>"; only the selector and a bcrypt hash of the verifier
// are stored.
type PersonalAccessToken struct {
	ID         string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID     string `gorm:"size:36;not null;index"`
	Name       string `gorm:"size:100;not null"`
	Selector   string `gorm:"size:64;not null;uniqueIndex"`
	TokenHash  string `gorm:"size:255;not null"`
	ExpiresAt  time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

func NewPersonalAccessToken(userID, name, selector, tokenHash string, expiresAt time.Time) *PersonalAccessToken {
	return &PersonalAccessToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Selector:  selector,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

func (t *PersonalAccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
