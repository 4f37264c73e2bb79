package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meeting-scheduler-api/internal/auth"
)

const UserIDKey = "uid"

// Auth requires a valid bearer token and stores the authenticated user id
// on the request context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// token from Authorization: Bearer <jwt>
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token"})
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	v, _ := c.Get(UserIDKey)
	uid, _ := v.(string)
	return uid
}
