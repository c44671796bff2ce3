// Package auth issues and verifies the JWT access tokens and opaque
// refresh tokens used by the API.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoToken      = errors.New("no access token provided")
	ErrInvalidToken = errors.New("the access token is invalid")
	ErrTokenExpired = errors.New("the access token has expired")
)

// Config holds the token settings. All handlers that issue or verify
// tokens receive it explicitly.
type Config struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ConfigFromEnv reads the JWT secret from JWT_SECRET. TTLs have fixed
// defaults: short-lived access tokens, refresh tokens good for 30 days.
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	return Config{
		Secret:     []byte(secret),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	}, nil
}

// HashPassword hashes a cleartext password for storage.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword verifies a cleartext password against its stored hash.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// NewAccessToken issues a signed JWT for the user.
func (c Config) NewAccessToken(userID uuid.UUID, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.AccessTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
}

// VerifyAccessToken checks the token signature and expiry and returns
// the user ID it was issued for.
func (c Config) VerifyAccessToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.Secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return uuid.Nil, ErrTokenExpired
	}
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return id, nil
}

// NewRefreshToken generates an opaque refresh token. The cleartext is
// handed to the client once; only its hash is stored.
func NewRefreshToken() (cleartext string, hash string, err error) {
	raw := make([]byte, 32)
	_, err = rand.Read(raw)
	if err != nil {
		return "", "", err
	}

	cleartext = hex.EncodeToString(raw)
	return cleartext, HashRefreshToken(cleartext), nil
}

// HashRefreshToken hashes a refresh token for storage and lookup.
func HashRefreshToken(cleartext string) string {
	sum := sha256.Sum256([]byte(cleartext))
	return hex.EncodeToString(sum[:])
}
