package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the owner of all other resources. Every resource carries the
// user ID as a scalar foreign key, there is no sharing between users.
type User struct {
	DefaultModel
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash []byte `json:"-"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// RefreshToken stores the SHA-256 hash of a refresh token.
//
// Tokens are single use: a successful refresh revokes the used token and
// issues a new one. Presenting a revoked or expired token signals an
// expired session to the client.
type RefreshToken struct {
	DefaultModel
	UserID    uuid.UUID `gorm:"index"`
	User      User
	TokenHash string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	Revoked   bool
}

// Valid reports whether the token can still be used at the given time.
func (t RefreshToken) Valid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
