package ecommerce_routes

import (
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/quote_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupQuoteRoutes registers the lead forms (quote, consultation, contact)
func SetupQuoteRoutes(router *gin.RouterGroup) {
	limit := middleware.RateLimiter(5, 10*time.Minute)

	router.POST("/emails", limit, quote_controller.SendQuote)
	router.POST("/quote", limit, quote_controller.SendQuote)
}
