package ecommerce_routes

import (
	"time"

	store_heater "github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/heater_controller"
	store_product "github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/product_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	// Product routes
	products := store.Group("/products")
	{
		products.GET("", store_product.GetStorefrontProducts)
		products.GET("/:id", store_product.GetStorefrontProductByID) // Configurator view

		products.POST("/:id/price", middleware.RateLimiter(120, time.Minute), store_product.PriceConfiguration)
		products.POST("/:id/quote", middleware.RateLimiter(5, 10*time.Minute), store_product.RequestProductQuote)
	}

	// Heater routes
	heaters := store.Group("/heaters")
	{
		heaters.GET("", store_heater.GetHeaters)
		heaters.GET("/:id", store_heater.GetHeaterByID)
	}
}
