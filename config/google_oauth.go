// ════════════════════════════════════════════════════════════
// Path: config/google_oauth.go
// Google OAuth Configuration
// ════════════════════════════════════════════════════════════

package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleIssuer = "https://accounts.google.com"

var (
	GoogleOAuthConfig *oauth2.Config
	OIDCVerifier      *oidc.IDTokenVerifier
)

// InitGoogleOAuth configures Google sign-in. Without GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET
// the Google routes answer 503 and credential login keeps working.
func InitGoogleOAuth(ctx context.Context) error {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" {
		log.Println("⚠️  GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, Google sign-in disabled")
		return nil
	}

	if redirectURL == "" {
		redirectURL = "http://localhost:8081/api/v1/auth/google/callback"
		log.Printf("⚠️  GOOGLE_REDIRECT_URL not set, using default: %s", redirectURL)
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	GoogleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	OIDCVerifier = provider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	log.Println("✅ Google OAuth initialized successfully")
	return nil
}

// GoogleOAuthEnabled reports whether InitGoogleOAuth found credentials
func GoogleOAuthEnabled() bool {
	return GoogleOAuthConfig != nil && OIDCVerifier != nil
}

// GetFrontendURL returns the storefront URL used for OAuth redirects
func GetFrontendURL() string {
	return getEnv("STOREFRONT_URL", "http://localhost:3000")
}
