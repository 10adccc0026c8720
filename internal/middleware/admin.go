package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printpay/internal/domain"
)

// RequireScope admits ADMIN tokens that grant scope. Runs after Authenticate.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		if claims.Role != domain.RoleAdmin || !claims.Allows(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "scope": scope})
			return
		}
		c.Next()
	}
}
