package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "auth:user-id"

// SessionExpiredError is the code clients use to distinguish an expired
// session, which they resolve by refreshing, from a bad token.
const SessionExpiredError = "SESSION_EXPIRED"

// Middleware verifies the bearer token on every request and stores the
// authenticated user's ID in the gin context.
func Middleware(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abort(c, ErrNoToken)
			return
		}

		userID, err := cfg.VerifyAccessToken(token)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	if errors.Is(err, ErrTokenExpired) {
		body["code"] = SessionExpiredError
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, body)
}

// UserID returns the authenticated user's ID. It must only be called
// on routes behind Middleware.
func UserID(c *gin.Context) uuid.UUID {
	id, _ := c.MustGet(userIDKey).(uuid.UUID)
	return id
}
