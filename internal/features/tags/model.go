package tags

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is a catalog tag entry. The slug is the public identifier,
// derived from the name.
type Tag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageID   string             `bson:"imageId,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateTagRequest binds the multipart create form, the image file is
// optional and arrives under the "image" key.
type CreateTagRequest struct {
	Name string `form:"name" binding:"required"`
}

// UpdateTagRequest carries the renameable fields.
type UpdateTagRequest struct {
	Name string `json:"name" binding:"required"`
}
