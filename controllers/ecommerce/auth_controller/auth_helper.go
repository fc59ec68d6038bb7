package auth_controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/middleware"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/Pacific-Tide/pacific-tide-backend/utils"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

var users services.UserRepository

// Init sets the user repository used by the auth handlers
func Init(repo services.UserRepository) {
	users = repo
}

// recordLogin is a variable so tests can run without the login_events table.
var recordLogin = utils.LogLoginEvent

// issueSession signs a token for user, sets the auth cookie and records the sign-in.
func issueSession(c *gin.Context, user *models.User, provider string) (string, error) {
	token, err := utils.GenerateJWT(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return "", err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AuthCookieName,
		token,
		int(utils.TokenTTL().Seconds()),
		"/",
		"",
		config.IsProduction(),
		true, // httpOnly
	)

	if err := recordLogin(c, user.ID, provider); err != nil {
		log.Printf("⚠️  Failed to log login event: %v", err)
	}

	return token, nil
}

func createOrUpdateGoogleUser(ctx context.Context, googleUser *models.GoogleUserInfo) (*models.User, error) {
	email := services.NormalizeEmail(googleUser.Email)

	user, err := users.FindByEmail(ctx, email)
	if errors.Is(err, services.ErrUserNotFound) {
		// First-time Google login, create user
		googleID := googleUser.Sub
		user = &models.User{
			Email:         email,
			Name:          googleUser.Name,
			GoogleID:      &googleID,
			Provider:      models.ProviderGoogle,
			Role:          models.RoleUser,
			EmailVerified: googleUser.EmailVerified,
		}
		if googleUser.Picture != "" {
			picture := googleUser.Picture
			user.Avatar = &picture
		}
		if err := users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	// Existing user: update safe fields only
	updates := map[string]interface{}{
		"email_verified": user.EmailVerified || googleUser.EmailVerified,
	}
	if googleUser.Picture != "" {
		updates["avatar"] = googleUser.Picture
	}
	if user.Name == "" {
		updates["name"] = googleUser.Name
	}
	// Attach Google account if not already linked
	if user.GoogleID == nil {
		updates["google_id"] = googleUser.Sub
	}

	if err := users.Update(ctx, user, updates); err != nil {
		return nil, err
	}

	if user.Name == "" {
		user.Name = googleUser.Name
	}
	if googleUser.Picture != "" {
		picture := googleUser.Picture
		user.Avatar = &picture
	}
	if user.GoogleID == nil {
		sub := googleUser.Sub
		user.GoogleID = &sub
	}
	user.EmailVerified = user.EmailVerified || googleUser.EmailVerified

	return user, nil
}

func redirectToFrontendWithError(c *gin.Context, errorMsg string) {
	redirectURL := fmt.Sprintf("%s/auth/error?message=%s", config.GetFrontendURL(), url.QueryEscape(errorMsg))
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
