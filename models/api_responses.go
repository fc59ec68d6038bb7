package models

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitContextKey is where the rate limiter leaves the caller's quota for the response envelope.
const RateLimitContextKey = "rateLimiter"

// ApiResponse is the envelope of every JSON response.
type ApiResponse struct {
	Message         string            `json:"message"`
	Data            any               `json:"data,omitempty"`
	Error           bool              `json:"error,omitempty"`
	Fields          map[string]string `json:"fields,omitempty"`
	Meta            *Pagination       `json:"meta"`
	Rate            *RateLimiter      `json:"rate_limit,omitempty"`
	RequestedEntity string            `json:"requested_entity,omitempty"`
}

type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"10"`
	Total      int `json:"total" example:"42"`
	TotalPages int `json:"total_pages" example:"5"`
}

type RateLimiter struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

func rateFromContext(c *gin.Context) *RateLimiter {
	if rate, exists := c.Get(RateLimitContextKey); exists {
		if rl, ok := rate.(*RateLimiter); ok {
			return rl
		}
	}
	return nil
}

func newResponse(c *gin.Context, message string) ApiResponse {
	if c == nil {
		return ApiResponse{Message: message}
	}
	return ApiResponse{
		Message:         message,
		Rate:            rateFromContext(c),
		RequestedEntity: c.Request.Method + " " + c.FullPath(),
	}
}

func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	r := newResponse(c, message)
	r.Data = data
	return r
}

func PaginatedResponse(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	r := SuccessResponse(c, message, data)
	r.Meta = meta
	return r
}

func ErrorResponse(c *gin.Context, message string) ApiResponse {
	r := newResponse(c, message)
	r.Error = true
	return r
}

// ValidationErrorResponse is an ErrorResponse naming the offending fields, keyed by JSON name.
func ValidationErrorResponse(c *gin.Context, message string, fields map[string]string) ApiResponse {
	r := ErrorResponse(c, message)
	if len(fields) > 0 {
		r.Fields = fields
	}
	return r
}
