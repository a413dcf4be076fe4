package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
)

const bearerPrefix = "Bearer "

// RequireAuth checks for a valid access token, taken from the Authorization
// header or, failing that, from the session
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := accessToken(c)
		if raw == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired access token")
			c.Abort()
			return
		}
		userID, _ := claims.UserID()

		// Store caller identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyNickname, claims.Nickname)
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	session := sessions.Default(c)
	if token, ok := session.Get(constants.SessionKeyAccessToken).(string); ok {
		return token
	}
	return ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
