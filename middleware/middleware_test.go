package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "email": email})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := protectedRouter()

	id := uuid.New()
	token, err := utils.GenerateJWT(id, "ada@example.com", "Ada", "USER")
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdminMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/leads", AuthMiddleware(), RequireAdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func(role string) int {
		token, err := utils.GenerateJWT(uuid.New(), "staff@pacifictide.ca", "Staff", role)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, call(models.RoleUser))
}

func limitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/emails", RateLimiter(1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRateLimiter_FailsOpenWithoutRedis(t *testing.T) {
	original := rateLimitClient
	rateLimitClient = func() *redis.Client { return nil }
	t.Cleanup(func() { rateLimitClient = original })

	r := limitedRouter()
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/emails", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimiter_FailsOpenWhenRedisErrors(t *testing.T) {
	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = unreachable.Close() })

	original := rateLimitClient
	rateLimitClient = func() *redis.Client { return unreachable }
	t.Cleanup(func() { rateLimitClient = original })

	w := httptest.NewRecorder()
	limitedRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/emails", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestQuota(t *testing.T) {
	rate := quota(5, 2, time.Now().Add(90*time.Second))
	assert.Equal(t, 5, rate.Limit)
	assert.Equal(t, 3, rate.Remaining)
	assert.InDelta(t, 90, rate.ResetInSeconds, 1)

	rate = quota(5, 9, time.Now().Add(-time.Second))
	assert.Equal(t, 0, rate.Remaining)
	assert.Equal(t, 0, rate.ResetInSeconds)
}
