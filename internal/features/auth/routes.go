package auth

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
	"github.com/xyz-asif/gocart/internal/pkg/mail"
	"github.com/xyz-asif/gocart/internal/pkg/ratelimit"
)

// RegisterRoutes registers the auth routes. The repository comes from the
// route registry, users is a single-owner collection shared with the users
// feature.
func RegisterRoutes(router *gin.RouterGroup, repo *Repository, cfg *config.Config) {
	jar := cookie.NewJar(cfg)
	mailer := mail.NewSender(cfg)
	handler := NewHandler(repo, cfg, jar, mailer)

	// Auth endpoints are the brute-force target, keep them on a tight
	// per-IP budget.
	limiter := ratelimit.New(10, time.Minute)
	limiter.StartCleanup(5 * time.Minute)
	limited := ratelimit.Middleware(limiter)

	requireAuth := RequireAuth(repo, cfg, jar)

	auth := router.Group("/auth")
	{
		auth.POST("/register", limited, RequireLoggedOut(), handler.Register)
		auth.POST("/activate", limited, handler.Activate)
		auth.POST("/login", limited, RequireLoggedOut(), handler.Login)
		auth.POST("/forgot-password", limited, handler.ForgotPassword)
		auth.POST("/reset-password", limited, handler.ResetPassword)
		auth.GET("/me", requireAuth, handler.Me)
		auth.GET("/refresh", handler.Refresh)
		auth.POST("/logout", handler.Logout)
	}
}
