package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
	"github.com/xyz-asif/gocart/internal/pkg/response"
	"github.com/xyz-asif/gocart/internal/pkg/token"
)

const userContextKey = "user"

// CurrentUser returns the user attached by RequireAuth, nil when the
// request never went through it.
func CurrentUser(c *gin.Context) *User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*User); ok {
			return user
		}
	}
	return nil
}

// RequireAuth resolves the request identity from the access cookie. A bad
// token clears the cookie before rejecting, so the client isn't stuck
// resending it.
func RequireAuth(repo *Repository, cfg *config.Config, jar *cookie.Jar) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := c.Cookie(cookie.AccessToken)
		if err != nil || accessToken == "" {
			response.Unauthorized(c, "Unauthorized, Access token not found. Please login.")
			c.Abort()
			return
		}

		claims, err := token.Verify(accessToken, cfg.AccessTokenSecret)
		if err != nil {
			jar.Clear(c, cookie.AccessToken)
			response.Unauthorized(c, "Unauthorized, Invalid access token. Please login again.")
			c.Abort()
			return
		}

		// Deleted after token issuance is still a valid state, reject it.
		user, err := repo.FindByEmail(c.Request.Context(), token.Email(claims))
		if err != nil {
			response.InternalServerError(c, "Failed to find account")
			c.Abort()
			return
		}
		if user == nil {
			jar.Clear(c, cookie.AccessToken)
			response.NotFound(c, "User not found.")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireLoggedOut rejects login/register attempts that arrive with an
// access cookie already present.
func RequireLoggedOut() gin.HandlerFunc {
	return func(c *gin.Context) {
		if accessToken, err := c.Cookie(cookie.AccessToken); err == nil && accessToken != "" {
			response.BadRequest(c, "User is already logged in")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Assumes RequireAuth ran
// first and set the role on the context.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Unauthorized(c, "Unauthorized, no role on request")
			c.Abort()
			return
		}

		if _, ok := allowed[strings.ToLower(role)]; !ok {
			response.Forbidden(c, "You don't have permission to access this resource")
			c.Abort()
			return
		}

		c.Next()
	}
}
