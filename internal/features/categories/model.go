package categories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a catalog category entry. The slug is the public identifier,
// derived from the name.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageID   string             `bson:"imageId,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateCategoryRequest binds the multipart create form, the image file is
// optional and arrives under the "image" key.
type CreateCategoryRequest struct {
	Name string `form:"name" binding:"required"`
}

// UpdateCategoryRequest carries the renameable fields.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
