package auth_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
)

// Register godoc
// @Summary Create a customer account
// @Description Registers a customer with email and password (at least 8 characters) and starts a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Account details"
// @Success 201 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A valid email and password are required"))
		return
	}

	authService := services.GetAuthService()
	if !authService.ValidatePassword(req.Password) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Password must be at least 8 characters"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	email := services.NormalizeEmail(req.Email)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "An account with this email already exists"))
		return
	} else if !errors.Is(err, services.ErrUserNotFound) {
		log.Printf("❌ Failed to look up user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create account"))
		return
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create account"))
		return
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hash,
		Provider:     models.ProviderCredentials,
		Role:         models.RoleUser,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "An account with this email already exists"))
			return
		}
		log.Printf("❌ Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create account"))
		return
	}

	token, err := issueSession(c, user, models.ProviderCredentials)
	if err != nil {
		log.Printf("❌ JWT error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate token"))
		return
	}

	log.Printf("✅ Account created: %s", user.Email)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Account created successfully", models.AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}))
}
