package cookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gocart/internal/config"
)

// Cookie names carrying the token pair. The two cookies are the whole
// session, the server keeps no session table.
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

// Jar writes and clears the auth cookies with one consistent attribute set.
// Set and Clear must use the same attributes or browsers refuse the clear.
type Jar struct {
	secure   bool
	sameSite http.SameSite
}

// NewJar derives cookie attributes from config once at startup. Secure is
// on everywhere except development. SameSite comes from COOKIE_SAME_SITE:
// "strict" for single-origin deployments (the default), "none" for
// cross-site ones, which additionally requires HTTPS.
func NewJar(cfg *config.Config) *Jar {
	sameSite := http.SameSiteStrictMode
	if cfg.CookieSameSite == "none" {
		sameSite = http.SameSiteNoneMode
	}

	return &Jar{
		secure:   cfg.AppEnv != "development",
		sameSite: sameSite,
	}
}

// Set writes an httpOnly cookie holding a token.
func (j *Jar) Set(c *gin.Context, name, value string, maxAge time.Duration) {
	c.SetSameSite(j.sameSite)
	c.SetCookie(name, value, int(maxAge.Seconds()), "/", "", j.secure, true)
}

// Clear removes a cookie using the attributes it was set with. Clearing an
// absent cookie is not an error.
func (j *Jar) Clear(c *gin.Context, name string) {
	c.SetSameSite(j.sameSite)
	c.SetCookie(name, "", -1, "/", "", j.secure, true)
}
