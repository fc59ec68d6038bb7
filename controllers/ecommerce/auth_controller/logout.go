package auth_controller

import (
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
)

// Logout godoc
// @Summary Logout user
// @Description Clears the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	// must match name, path, secure and httpOnly of the cookie being deleted
	c.SetCookie(
		middleware.AuthCookieName,
		"",
		-1,
		"/",
		"",
		config.IsProduction(),
		true,
	)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}
