package middleware

import (
	"net/http"

	"freshsip_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects callers whose verified credential does not carry the
// admin role. Must run after AuthRequired.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		c.Abort()
		return
	}
	c.Next()
}
