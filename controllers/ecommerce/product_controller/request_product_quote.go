package product_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/quote_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/pricing"
	"github.com/gin-gonic/gin"
)

// RequestProductQuote godoc
// @Summary Request a quote for a configured product
// @Description Prices the configuration on the server, builds the quote and emails it to the shop
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.ProductQuoteRequest true "Configuration and contact details"
// @Success 200 {object} models.QuoteSendResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 429 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/products/{id}/quote [post]
func RequestProductQuote(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var req models.ProductQuoteRequest
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

	payload, err := pricing.BuildPayload(product, pricing.ConfigurationFromRequest(req.Configuration), req.Contact)
	if errors.Is(err, pricing.ErrMissingContactFields) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Missing required fields."))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, err.Error()))
		return
	}

	quote_controller.Submit(c, payload)
}
