package auth_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
)

// Login godoc
// @Summary Sign in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email and password are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		log.Printf("❌ Failed to look up user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to sign in"))
		return
	}

	// Google-only accounts have no password hash
	if user == nil || user.PasswordHash == nil ||
		!services.GetAuthService().VerifyPassword(*user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid email or password"))
		return
	}

	token, err := issueSession(c, user, models.ProviderCredentials)
	if err != nil {
		log.Printf("❌ JWT error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Signed in successfully", models.AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}))
}
