package ecommerce_routes

import (
	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/user_controller/profile_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up all user profile routes
func SetupUserRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware()) // All routes require auth
	{
		user.GET("/me", profile_controller.GetMe)
		user.PATCH("/me", profile_controller.UpdateProfile)
	}
}
