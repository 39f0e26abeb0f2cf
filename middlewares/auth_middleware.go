package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elvisxd/calorie-tracker-api/utils"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// RequireAuth validates the bearer token and stores the caller's identity
// in the request context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "authorization header is required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c, "authorization header must be a bearer token")
			return
		}

		claims, err := utils.ParseToken(secret, token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}
		// purpose-bound tokens (password reset) are not bearer credentials
		if claims.Purpose != "" {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   message,
	})
}
