// Path: controllers/ecommerce/auth_controller/google_login.go

package auth_controller

import (
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
)

// GoogleLogin godoc
// @Summary Redirect to Google OAuth
// @Description Starts the Google OAuth flow by generating a state token, storing it in a cookie, and redirecting the user to Google's consent page.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Temporary redirect to Google OAuth"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Failure 503 {object} models.ApiResponse "Google sign-in not configured"
// @Router /auth/google [get]
func GoogleLogin(c *gin.Context) {
	if !config.GoogleOAuthEnabled() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not configured"))
		return
	}

	state, err := services.GetAuthService().GenerateStateToken()
	if err != nil {
		log.Printf("❌ Failed to generate state token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to start Google sign-in"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		oauthStateCookie,
		state,
		600, // 10 minutes
		"/",
		"",
		config.IsProduction(),
		true,
	)

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}
