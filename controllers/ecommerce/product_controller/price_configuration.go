package product_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/pricing"
	"github.com/gin-gonic/gin"
)

// PriceConfiguration godoc
// @Summary Price a product configuration
// @Description Recomputes the total of a configuration from the catalog. Unknown option ids and heater option types contribute nothing.
// @Tags store
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param configuration body models.ConfigurationRequest true "Current selection"
// @Success 200 {object} models.ApiResponse{data=models.PriceResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/products/{id}/price [post]
func PriceConfiguration(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var req models.ConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := loadProduct(ctx, productID)
	if errors.Is(err, ErrProductNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if err != nil {
		log.Printf("[store] failed to load product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product"))
		return
	}

	cfg := pricing.ConfigurationFromRequest(req)
	breakdown := pricing.Compute(product, cfg)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Price computed successfully", priceResponse(cfg, breakdown)))
}
