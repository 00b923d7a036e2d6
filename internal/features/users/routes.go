package users

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/features/auth"
	"github.com/xyz-asif/gocart/internal/pkg/cloudinary"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
)

// RegisterRoutes sets up user management routes on the shared auth
// repository. Everything below /users is authenticated, the admin-only
// endpoints add a role check on top.
func RegisterRoutes(router *gin.RouterGroup, repo *auth.Repository, cfg *config.Config, images *cloudinary.Service) {
	handler := NewHandler(repo, images)

	jar := cookie.NewJar(cfg)
	requireAuth := auth.RequireAuth(repo, cfg, jar)
	adminOnly := auth.RequireRoles(auth.RoleAdmin)

	users := router.Group("/users")
	users.Use(requireAuth)
	{
		users.PATCH("/password", handler.UpdatePassword)
		users.PATCH("/photo", handler.UploadPhoto)

		users.GET("", adminOnly, handler.List)
		users.GET("/:id", adminOnly, handler.Get)
		users.PUT("/:id", adminOnly, handler.Update)
		users.DELETE("/:id", adminOnly, handler.Delete)
		users.PATCH("/:id/ban", adminOnly, handler.Ban)
		users.PATCH("/:id/unban", adminOnly, handler.Unban)
	}
}
