package products

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/features/auth"
	"github.com/xyz-asif/gocart/internal/features/brands"
	"github.com/xyz-asif/gocart/internal/features/categories"
	"github.com/xyz-asif/gocart/internal/features/tags"
	"github.com/xyz-asif/gocart/internal/pkg/cloudinary"
	"github.com/xyz-asif/gocart/internal/pkg/cookie"
)

// RegisterRoutes sets up the product routes. The taxonomy repositories are
// shared with their own features, products only reads them for reference
// checks. Reads are public, writes are admin only.
func RegisterRoutes(
	router *gin.RouterGroup,
	db *mongo.Database,
	authRepo *auth.Repository,
	brandsRepo *brands.Repository,
	categoriesRepo *categories.Repository,
	tagsRepo *tags.Repository,
	cfg *config.Config,
	images *cloudinary.Service,
) {
	repo := NewRepository(db)
	handler := NewHandler(repo, brandsRepo, categoriesRepo, tagsRepo, images)

	jar := cookie.NewJar(cfg)
	requireAdmin := []gin.HandlerFunc{
		auth.RequireAuth(authRepo, cfg, jar),
		auth.RequireRoles(auth.RoleAdmin),
	}

	group := router.Group("/products")
	{
		group.GET("", handler.List)
		group.GET("/:slug", handler.Get)

		group.POST("", append(requireAdmin, handler.Create)...)
		group.PUT("/:id", append(requireAdmin, handler.Update)...)
		group.DELETE("/:id", append(requireAdmin, handler.Delete)...)
	}
}
