package middleware

import (
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
)

// RequireAdminMiddleware lets through only sessions whose role claim is ADMIN. It must run after
// AuthMiddleware.
func RequireAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetUserRoleFromContext(c)
		if !exists {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - role not found"))
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			userID, _ := GetUserIDFromContext(c)
			log.Printf("[auth] non-admin user %s attempted restricted action %s", userID, c.FullPath())
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
