package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
	"github.com/xyz-asif/gocart/internal/pkg/token"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:            "development",
		CookieSameSite:    "strict",
		AccessTokenSecret: "access-secret",
		AccessTokenExpiry: time.Minute,
	}
}

func TestRequireAuthNoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	r := gin.New()
	r.GET("/protected", RequireAuth(nil, cfg, cookie.NewJar(cfg)), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	inner := body["error"].(map[string]any)
	require.Equal(t, float64(401), inner["status"])
}

func TestRequireAuthInvalidTokenClearsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	r := gin.New()
	r.GET("/protected", RequireAuth(nil, cfg, cookie.NewJar(cfg)), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(httpCookie(cookie.AccessToken, "garbage"))
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == cookie.AccessToken && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "invalid access token should clear the cookie")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	expired, err := token.Issue(map[string]interface{}{"email": "a@x.com"}, cfg.AccessTokenSecret, -time.Minute)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", RequireAuth(nil, cfg, cookie.NewJar(cfg)), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(httpCookie(cookie.AccessToken, expired))
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestRequireLoggedOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RequireLoggedOut(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// already holding an access cookie -> 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	req.AddCookie(httpCookie(cookie.AccessToken, "some-token"))
	r.ServeHTTP(w, req)
	require.Equal(t, 400, w.Code)

	// no cookie -> pass through
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
	require.Equal(t, 200, w.Code)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) { c.Set("role", "user") }, RequireRoles(RoleAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/admin-ok", func(c *gin.Context) { c.Set("role", "admin") }, RequireRoles(RoleAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/no-role", RequireRoles(RoleAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	require.Equal(t, 403, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin-ok", nil))
	require.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/no-role", nil))
	require.Equal(t, 401, w.Code)
}

func httpCookie(name, value string) *http.Cookie {
	return &http.Cookie{Name: name, Value: value}
}
