package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
	"github.com/xyz-asif/gocart/internal/pkg/token"
)

func refreshConfig() *config.Config {
	return &config.Config{
		AppEnv:             "development",
		CookieSameSite:     "strict",
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: time.Minute,
	}
}

func refreshRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(nil, cfg, cookie.NewJar(cfg), nil)
	r := gin.New()
	r.GET("/auth/refresh", handler.Refresh)
	r.POST("/auth/logout", handler.Logout)
	return r
}

func TestRefreshWithoutCookie(t *testing.T) {
	r := refreshRouter(refreshConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/auth/refresh", nil))

	require.Equal(t, 401, w.Code)
}

func TestRefreshWithExpiredToken(t *testing.T) {
	cfg := refreshConfig()
	r := refreshRouter(cfg)

	expired, err := token.Issue(map[string]interface{}{"email": "a@x.com"}, cfg.RefreshTokenSecret, -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/refresh", nil)
	req.AddCookie(httpCookie(cookie.RefreshToken, expired))
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestRefreshRejectsAccessTokenAsRefresh(t *testing.T) {
	cfg := refreshConfig()
	r := refreshRouter(cfg)

	// Signed with the access secret, must not pass refresh verification.
	wrongClass, err := token.Issue(map[string]interface{}{"email": "a@x.com"}, cfg.AccessTokenSecret, time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/refresh", nil)
	req.AddCookie(httpCookie(cookie.RefreshToken, wrongClass))
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	r := refreshRouter(refreshConfig())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/auth/logout", nil))
		require.Equal(t, 200, w.Code)

		cleared := map[string]bool{}
		for _, c := range w.Result().Cookies() {
			if c.MaxAge < 0 {
				cleared[c.Name] = true
			}
		}
		require.True(t, cleared[cookie.AccessToken])
		require.True(t, cleared[cookie.RefreshToken])
	}
}
