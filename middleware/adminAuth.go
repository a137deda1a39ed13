package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medbuddy/utils"
)

// JWTAuthAdminMiddleware guards staff endpoints. It expects a Bearer token
// issued by the admin login and rejects missing, malformed, expired or
// non-admin tokens.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if ok, err := utils.IsAdminToken(tokenString); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access", "details": err.Error()})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
