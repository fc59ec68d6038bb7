package lead_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetQuoteRequests godoc
// @Summary Get quote requests (CMS)
// @Description Lists logged lead notifications, newest first.
// @Tags Admin - Leads
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param kind query string false "Filter by kind" Enums(cart_quote,consultation,inquiry)
// @Param q query string false "Search by name, email or subject"
// @Param from query string false "Created on or after (YYYY-MM-DD)"
// @Param to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=[]models.QuoteLogRow,meta=models.Pagination}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/quotes [get]
func GetQuoteRequests(c *gin.Context) {
	log.Printf("[admin.quotes] start rawQuery=%s", c.Request.URL.RawQuery)

	f, err := parseLeadFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rows, total, err := listLeads(ctx, f)
	if err != nil {
		log.Printf("[admin.quotes] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch quote requests"))
		return
	}

	log.Printf("[admin.quotes] respond 200 total=%d page=%d", total, f.Page)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Quote requests retrieved successfully", rows, pagination(f, total)))
}

// GetQuoteRequestByID godoc
// @Summary Get one quote request (CMS)
// @Description Returns a logged lead including the payload as it was submitted.
// @Tags Admin - Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {object} models.ApiResponse{data=models.QuoteLogDetail}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/quotes/{id} [get]
func GetQuoteRequestByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid quote request ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	detail, err := findLead(ctx, id)
	if errors.Is(err, ErrLeadNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Quote request not found"))
		return
	}
	if err != nil {
		log.Printf("[admin.quotes] ERROR fetch id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch quote request"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Quote request retrieved successfully", detail))
}
