package tags

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/features/auth"
	"github.com/xyz-asif/gocart/internal/pkg/cloudinary"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
)

// RegisterRoutes sets up the tag routes on the shared repositories.
// Reads are public, writes are admin only.
func RegisterRoutes(router *gin.RouterGroup, repo *Repository, authRepo *auth.Repository, cfg *config.Config, images *cloudinary.Service) {
	handler := NewHandler(repo, images)

	jar := cookie.NewJar(cfg)
	requireAdmin := []gin.HandlerFunc{
		auth.RequireAuth(authRepo, cfg, jar),
		auth.RequireRoles(auth.RoleAdmin),
	}

	group := router.Group("/tags")
	{
		group.GET("", handler.List)
		group.GET("/:slug", handler.Get)

		group.POST("", append(requireAdmin, handler.Create)...)
		group.PUT("/:id", append(requireAdmin, handler.Update)...)
		group.DELETE("/:id", append(requireAdmin, handler.Delete)...)
	}
}
