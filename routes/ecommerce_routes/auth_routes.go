package ecommerce_routes

import (
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/auth_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up all authentication routes
func SetupAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		credentials := middleware.RateLimiter(10, 15*time.Minute)
		auth.POST("/register", credentials, auth_controller.Register)
		auth.POST("/login", credentials, auth_controller.Login)

		// Google OAuth routes
		auth.GET("/google", auth_controller.GoogleLogin)
		auth.GET("/google/callback", auth_controller.GoogleCallback)

		auth.POST("/logout", auth_controller.Logout)
	}
}
