package quote_controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
)

// QuoteSender delivers a validated quote request.
type QuoteSender interface {
	Notify(ctx context.Context, req *models.QuoteRequest) (*services.SendResult, error)
}

var sender QuoteSender

// Init sets the notifier used by the quote handlers
func Init(s QuoteSender) {
	sender = s
}

// SendQuote godoc
// @Summary Submit a quote, consultation or contact request
// @Description Validates the request and emails it to the shop. Cart quotes need a cart summary.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body models.QuoteRequest true "Quote request"
// @Success 200 {object} models.QuoteSendResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 429 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /emails [post]
func SendQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	Submit(c, &req)
}

// Submit validates req, hands it to the notifier and writes the response.
func Submit(c *gin.Context, req *models.QuoteRequest) {
	if msg, fields := validate(req); msg != "" {
		c.JSON(http.StatusBadRequest, models.ValidationErrorResponse(c, msg, fields))
		return
	}

	if sender == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Email service is not configured."))
		return
	}

	result, err := sender.Notify(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMailNotConfigured):
			log.Printf("[quote] mail transport is not configured")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Email service is not configured."))
		case errors.Is(err, services.ErrMissingRequiredFields):
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Missing required fields."))
		default:
			msg := err.Error()
			if msg == "" {
				msg = "Failed to send email"
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, msg))
		}
		return
	}

	c.JSON(http.StatusOK, models.QuoteSendResponse{
		Message:   "Email sent successfully!",
		MessageID: result.MessageID,
		Accepted:  nonNil(result.Accepted),
		Rejected:  nonNil(result.Rejected),
	})
}

// validate returns the client-facing message and, for missing contact fields, which ones.
func validate(req *models.QuoteRequest) (string, map[string]string) {
	fields := map[string]string{}
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	} {
		if blank(f.value) {
			fields[f.name] = "required"
		}
	}
	if len(fields) > 0 {
		return "Missing required fields.", fields
	}
	if req.IsCartQuote && req.CartSummary == nil {
		return "Cart summary is required for quote requests.", map[string]string{"cartSummary": "required"}
	}
	return "", nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
