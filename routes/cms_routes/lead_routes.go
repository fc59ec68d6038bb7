package cms_routes

import (
	"github.com/Pacific-Tide/pacific-tide-backend/controllers/cms/lead_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupLeadRoutes exposes the quote request log to staff accounts (role ADMIN).
func SetupLeadRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdminMiddleware())
	{
		admin.GET("/quotes", lead_controller.GetQuoteRequests)
		admin.GET("/quotes/stats", lead_controller.GetLeadStats)
		admin.GET("/quotes/monthly", lead_controller.GetMonthlyLeads)
		admin.GET("/quotes/:id", lead_controller.GetQuoteRequestByID)
	}
}
