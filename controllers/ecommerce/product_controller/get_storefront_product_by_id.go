package product_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
)

// GetStorefrontProductByID godoc
// @Summary Get the configurator view of a product
// @Description Returns the product with its installation, wood type and add-on options, compatible heaters with their option groups, the default selection and its price
// @Tags store
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.ConfiguratorResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/products/{id} [get]
func GetStorefrontProductByID(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
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

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", buildConfiguratorView(product)))
}
