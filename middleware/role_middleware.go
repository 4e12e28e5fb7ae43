package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-api/models"
)

// RequireRoles creates a middleware that ensures the authenticated user has
// one of the given roles. It must be used after AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get role from context (set by AuthMiddleware)
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		roleStr, _ := roleValue.(string)
		for _, role := range roles {
			if models.Role(roleStr) == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Insufficient role privileges",
		})
		c.Abort()
	}
}
