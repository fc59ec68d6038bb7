package utils

import (
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uaRule maps a user agent to a label when it contains any of the needles and none of the
// exclusions. Rules are checked in order; the first match wins.
type uaRule struct {
	label    string
	any      []string
	excludes []string
}

var (
	deviceRules = []uaRule{
		{label: "tablet", any: []string{"tablet", "ipad"}},
		{label: "mobile", any: []string{"mobile", "android", "iphone"}},
	}
	browserRules = []uaRule{
		{label: "Edge", any: []string{"edg/", "edge/"}},
		{label: "Chrome", any: []string{"chrome/", "crios/"}},
		{label: "Firefox", any: []string{"firefox/", "fxios/"}},
		{label: "Safari", any: []string{"safari/"}, excludes: []string{"chrome/", "chromium/"}},
	}
	osRules = []uaRule{
		{label: "Windows", any: []string{"windows"}},
		{label: "iOS", any: []string{"iphone", "ipad"}},
		{label: "macOS", any: []string{"mac os"}},
		{label: "Android", any: []string{"android"}},
		{label: "Linux", any: []string{"linux"}},
	}
)

func classify(userAgent string, rules []uaRule, fallback string) string {
	ua := strings.ToLower(userAgent)
	for _, r := range rules {
		if containsAny(ua, r.any) && !containsAny(ua, r.excludes) {
			return r.label
		}
	}
	return fallback
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func parseDeviceType(userAgent string) string { return classify(userAgent, deviceRules, "desktop") }
func parseBrowser(userAgent string) string    { return classify(userAgent, browserRules, "Other") }
func parseOS(userAgent string) string         { return classify(userAgent, osRules, "Other") }

// NewLoginEvent describes a sign-in from the request's client address and user agent.
func NewLoginEvent(c *gin.Context, userID uuid.UUID, provider string) models.LoginEvent {
	userAgent := c.GetHeader("User-Agent")
	return models.LoginEvent{
		ID:         uuid.Must(uuid.NewV7()),
		UserID:     userID,
		LoggedInAt: time.Now().UTC(),
		Provider:   provider,
		IPAddress:  GetClientIP(c),
		UserAgent:  userAgent,
		DeviceType: parseDeviceType(userAgent),
		Browser:    parseBrowser(userAgent),
		OS:         parseOS(userAgent),
	}
}

// LogLoginEvent appends a row to login_events.
func LogLoginEvent(c *gin.Context, userID uuid.UUID, provider string) error {
	if config.StoreDB == nil {
		return errors.New("database not initialised")
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	e := NewLoginEvent(c, userID, provider)
	_, err := config.StoreDB.Exec(ctx, `
		INSERT INTO login_events (id, user_id, logged_in_at, provider, ip_address, user_agent, device_type, browser, os)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID.String(), e.UserID.String(), e.LoggedInAt, e.Provider, e.IPAddress, e.UserAgent, e.DeviceType, e.Browser, e.OS)
	if err != nil {
		log.Printf("❌ Failed to log login event: %v", err)
		return err
	}

	log.Printf("✅ %s sign-in for user %s (%s, %s on %s)", provider, userID, e.DeviceType, e.Browser, e.OS)
	return nil
}

// GetClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then gin's view of the peer.
func GetClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	return c.ClientIP()
}
