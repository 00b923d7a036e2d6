package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/gocart/internal/config"
)

func jarFor(env, sameSite string) *Jar {
	return NewJar(&config.Config{AppEnv: env, CookieSameSite: sameSite})
}

func TestSetWritesHTTPOnlyCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	jarFor("production", "strict").Set(c, AccessToken, "tok", 15*time.Minute)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	got := cookies[0]
	require.Equal(t, AccessToken, got.Name)
	require.Equal(t, "tok", got.Value)
	require.True(t, got.HttpOnly)
	require.True(t, got.Secure)
	require.Equal(t, http.SameSiteStrictMode, got.SameSite)
	require.Equal(t, int((15 * time.Minute).Seconds()), got.MaxAge)
}

func TestDevelopmentSkipsSecure(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	jarFor("development", "strict").Set(c, RefreshToken, "tok", time.Hour)

	got := w.Result().Cookies()[0]
	require.False(t, got.Secure)
}

func TestCrossSitePolicy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	jarFor("production", "none").Set(c, AccessToken, "tok", time.Hour)

	got := w.Result().Cookies()[0]
	require.Equal(t, http.SameSiteNoneMode, got.SameSite)
	require.True(t, got.Secure)
}

func TestClearMirrorsSetAttributes(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	jar := jarFor("production", "strict")
	jar.Clear(c, AccessToken)

	got := w.Result().Cookies()[0]
	require.Equal(t, AccessToken, got.Name)
	require.Empty(t, got.Value)
	require.True(t, got.HttpOnly)
	require.True(t, got.Secure)
	require.Negative(t, got.MaxAge)
}

func TestClearIsIdempotent(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	jar := jarFor("production", "strict")
	jar.Clear(c, AccessToken)
	jar.Clear(c, RefreshToken)
	jar.Clear(c, RefreshToken)

	require.Len(t, w.Result().Cookies(), 3)
}
