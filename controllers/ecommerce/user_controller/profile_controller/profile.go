package profile_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var users services.UserRepository

// Init sets the user repository used by the profile handlers
func Init(repo services.UserRepository) {
	users = repo
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
}

func currentUser(c *gin.Context) (*models.User, bool) {
	userIDStr, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid user ID"))
		return nil, false
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := users.FindByID(ctx, userID)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "User not found"))
		return nil, false
	}
	if err != nil {
		log.Printf("❌ Failed to load user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch user"))
		return nil, false
	}
	return user, true
}

// GetMe godoc
// @Summary Get current authenticated user
// @Description Check authentication status and return basic user info
// @Tags User - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /user/me [get]
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Authenticated", user.ToResponse()))
}

// UpdateProfile godoc
// @Summary Update the current user's display name
// @Tags User - Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Router /user/me [patch]
func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nothing to update"))
		return
	}

	name := strings.TrimSpace(*req.Name)
	if name == "" || len(name) > 255 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Name must be between 1 and 255 characters"))
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := users.Update(ctx, user, map[string]interface{}{"name": name}); err != nil {
		log.Printf("❌ Failed to update user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update profile"))
		return
	}
	user.Name = name

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile updated", user.ToResponse()))
}
