package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/gocart/internal/config"
	"github.com/xyz-asif/gocart/internal/features/auth"
	"github.com/xyz-asif/gocart/internal/features/brands"
	"github.com/xyz-asif/gocart/internal/features/categories"
	"github.com/xyz-asif/gocart/internal/features/products"
	"github.com/xyz-asif/gocart/internal/features/tags"
	"github.com/xyz-asif/gocart/internal/features/users"
	"github.com/xyz-asif/gocart/internal/pkg/cloudinary"
)

// SetupRoutes mounts every feature under /api/v1. Repositories shared
// across features are built once here, so each collection keeps a single
// owner and indexes are created once.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api/v1")

	// One image service, the features share it for uploads and cleanup.
	// A nil service keeps the API up with uploads failing cleanly.
	images, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "gocart")
	if err != nil {
		log.Printf("cloudinary disabled: %v", err)
	}

	authRepo := auth.NewRepository(db)
	brandsRepo := brands.NewRepository(db)
	categoriesRepo := categories.NewRepository(db)
	tagsRepo := tags.NewRepository(db)

	auth.RegisterRoutes(api, authRepo, cfg)
	users.RegisterRoutes(api, authRepo, cfg, images)
	products.RegisterRoutes(api, db, authRepo, brandsRepo, categoriesRepo, tagsRepo, cfg, images)
	brands.RegisterRoutes(api, brandsRepo, authRepo, cfg, images)
	categories.RegisterRoutes(api, categoriesRepo, authRepo, cfg, images)
	tags.RegisterRoutes(api, tagsRepo, authRepo, cfg, images)
}
