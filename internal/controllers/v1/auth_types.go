package v1

import (
	"github.com/budgetbook/backend/internal/models"
)

// RegisterEditable represents the data needed to create a user account.
type RegisterEditable struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"` // Email address, unique per user
	Password string `json:"password" binding:"required,min=8"`                   // Cleartext password, stored only as a hash
}

// LoginEditable represents the credentials for a login.
type LoginEditable struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required"`
}

// RefreshEditable carries the refresh token for token rotation and
// logout.
type RefreshEditable struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type User struct {
	models.DefaultModel
	Email string `json:"email" example:"jane@example.com"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
	}
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // The registered user
	Error *string `json:"error" example:"a user with this email address already exists"` // The error, if any occurred
}

// TokenPair is what login and refresh hand to the client. The refresh
// token is opaque and shown exactly once.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type TokenResponse struct {
	Data  *TokenPair `json:"data"`                                                       // The issued tokens
	Error *string    `json:"error" example:"the email address or password is incorrect"` // The error, if any occurred
	Code  string     `json:"code,omitempty" example:"SESSION_EXPIRED"`                   // Machine-readable error code, if any
}
