package middleware

import (
	"errors"
	"net/http"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/utils"
	"github.com/gin-gonic/gin"
)

const AuthCookieName = "auth_token"

var errNoToken = errors.New("no session token")

// sessionToken reads the auth cookie, falling back to an Authorization: Bearer header.
func sessionToken(c *gin.Context) (string, error) {
	if token, err := c.Cookie(AuthCookieName); err == nil && token != "" {
		return token, nil
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errNoToken
	}
	return utils.ExtractTokenFromHeader(header)
}

// AuthMiddleware requires a valid customer session and exposes its claims to handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := sessionToken(c)
		switch {
		case errors.Is(err, errNoToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization header required"))
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userName", claims.Name)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

func contextString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return contextString(c, "userID")
}

func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	return contextString(c, "userEmail")
}

func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	return contextString(c, "userRole")
}
