package products

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Shipping methods.
const (
	ShippingFree = "free"
	ShippingPaid = "paid"
)

// Description splits the short listing blurb from the long detail text.
type Description struct {
	Short string `bson:"short" json:"short"`
	Long  string `bson:"long" json:"long"`
}

// Price keeps the regular price and an optional sale price. Sale zero means
// not on sale.
type Price struct {
	Regular float64 `bson:"regular" json:"regular"`
	Sale    float64 `bson:"sale,omitempty" json:"sale,omitempty"`
}

// Shipping describes how the product ships.
type Shipping struct {
	Type string  `bson:"type" json:"type"`
	Fee  float64 `bson:"fee,omitempty" json:"fee,omitempty"`
}

// Image is one uploaded product image. The public id stays server-side for
// asset cleanup.
type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"-"`
}

// Product is a catalog entry. The slug is the public identifier, unique and
// derived from the name.
type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Title       string               `bson:"title" json:"title"`
	Slug        string               `bson:"slug" json:"slug"`
	Description Description          `bson:"description" json:"description"`
	Price       Price                `bson:"price" json:"price"`
	Quantity    int64                `bson:"quantity" json:"quantity"`
	Sold        int64                `bson:"sold" json:"sold"`
	Shipping    Shipping             `bson:"shipping" json:"shipping"`
	Brand       primitive.ObjectID   `bson:"brand" json:"brand"`
	Category    primitive.ObjectID   `bson:"category" json:"category"`
	Tags        []primitive.ObjectID `bson:"tags,omitempty" json:"tags,omitempty"`
	Rating      float64              `bson:"rating" json:"rating"`
	Images      []Image              `bson:"images,omitempty" json:"images,omitempty"`
	Status      string               `bson:"status" json:"status"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CreateProductRequest binds the multipart create form. Images arrive as
// files under the "images" key, everything else as form fields.
type CreateProductRequest struct {
	Name             string   `form:"name" binding:"required"`
	Title            string   `form:"title" binding:"required"`
	ShortDescription string   `form:"shortDescription" binding:"required"`
	LongDescription  string   `form:"longDescription"`
	RegularPrice     float64  `form:"regularPrice" binding:"required"`
	SalePrice        float64  `form:"salePrice"`
	Quantity         int64    `form:"quantity" binding:"required"`
	ShippingType     string   `form:"shippingType"`
	ShippingFee      float64  `form:"shippingFee"`
	Brand            string   `form:"brand" binding:"required"`
	Category         string   `form:"category" binding:"required"`
	Tags             []string `form:"tags"`
	Status           string   `form:"status"`
}

// UpdateProductRequest carries the allow-listed update fields. Nil means
// leave alone. Slug is not here, it follows the name.
type UpdateProductRequest struct {
	Name             *string   `json:"name"`
	Title            *string   `json:"title"`
	ShortDescription *string   `json:"shortDescription"`
	LongDescription  *string   `json:"longDescription"`
	RegularPrice     *float64  `json:"regularPrice"`
	SalePrice        *float64  `json:"salePrice"`
	Quantity         *int64    `json:"quantity"`
	ShippingType     *string   `json:"shippingType"`
	ShippingFee      *float64  `json:"shippingFee"`
	Brand            *string   `json:"brand"`
	Category         *string   `json:"category"`
	Tags             *[]string `json:"tags"`
	Status           *string   `json:"status"`
}
