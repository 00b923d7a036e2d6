package ratelimit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAllowsUnderLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(2, time.Minute)
	r := gin.New()
	r.Use(Middleware(lim))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		require.Equal(t, 200, w.Code)
	}
}

func TestMiddlewareRateLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0, time.Minute) // limit 0 -> always deny
	r := gin.New()
	r.Use(Middleware(lim))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, 429, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, false, body["success"])
	inner := body["error"].(map[string]any)
	require.Equal(t, float64(429), inner["status"])
}

func TestAllowSlidingWindow(t *testing.T) {
	lim := New(1, 10*time.Millisecond)
	require.True(t, lim.Allow("k"))
	require.False(t, lim.Allow("k"))

	time.Sleep(15 * time.Millisecond)
	require.True(t, lim.Allow("k"))
}

func TestCleanupDropsExpiredKeys(t *testing.T) {
	lim := New(1, time.Nanosecond)
	lim.Allow("k")
	time.Sleep(time.Millisecond)
	lim.Cleanup()

	lim.mu.RLock()
	defer lim.mu.RUnlock()
	require.Empty(t, lim.requests)
}
