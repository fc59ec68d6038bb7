// ════════════════════════════════════════════════════════════
// Path: controllers/ecommerce/auth_controller/google_callback.go
// Google OAuth Callback Handler
// ════════════════════════════════════════════════════════════

package auth_controller

import (
	"log"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
)

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Verifies the state token, exchanges the authorization code, verifies the ID token, creates or links the customer, sets the session cookie and redirects back to the storefront.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Redirect to the storefront"
// @Failure 503 {object} models.ApiResponse "Google sign-in not configured"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if !config.GoogleOAuthEnabled() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not configured"))
		return
	}

	state := c.Query("state")
	savedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != savedState {
		log.Printf("❌ State mismatch")
		redirectToFrontendWithError(c, "Invalid state token")
		return
	}

	// Clear state cookie
	c.SetCookie(oauthStateCookie, "", -1, "/", "", config.IsProduction(), true)

	code := c.Query("code")
	if code == "" {
		redirectToFrontendWithError(c, "No authorization code")
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	token, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		log.Printf("❌ Exchange failed: %v", err)
		redirectToFrontendWithError(c, "Failed to exchange token")
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		redirectToFrontendWithError(c, "Google did not return an ID token")
		return
	}

	idToken, err := config.OIDCVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		log.Printf("❌ ID token verification failed: %v", err)
		redirectToFrontendWithError(c, "Failed to verify Google account")
		return
	}

	var googleUser models.GoogleUserInfo
	if err := idToken.Claims(&googleUser); err != nil || googleUser.Sub == "" || googleUser.Email == "" {
		redirectToFrontendWithError(c, "Failed to read Google account")
		return
	}

	user, err := createOrUpdateGoogleUser(ctx, &googleUser)
	if err != nil {
		log.Printf("❌ DB error: %v", err)
		redirectToFrontendWithError(c, "Failed to sign in")
		return
	}

	if _, err := issueSession(c, user, models.ProviderGoogle); err != nil {
		log.Printf("❌ JWT error: %v", err)
		redirectToFrontendWithError(c, "Failed to generate token")
		return
	}

	log.Printf("✅ Google login successful: %s (verified: %v)", user.Email, user.EmailVerified)
	c.Redirect(http.StatusTemporaryRedirect, config.GetFrontendURL()+"/auth-popup")
}
