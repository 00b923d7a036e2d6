package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/gocart/internal/pkg/query"
	apperrors "github.com/xyz-asif/gocart/pkg/errors"
)

// Repository owns the products collection. Slug uniqueness is enforced by
// the index, the handler's pre-check only shapes the error message.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("products")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "price.regular", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "brand", Value: 1}, {Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, product *Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: product with this slug already exists", apperrors.ErrConflict)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return nil
}

// FindBySlug finds a product by its public slug. Not found is nil, nil.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id format", apperrors.ErrInvalidArgument)
	}

	var product Product
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// SlugExists reports whether the slug is already taken.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List runs the translated list query and counts with the same filter so
// the pagination metadata always matches the page.
func (r *Repository) List(ctx context.Context, q *query.Query) ([]Product, int64, error) {
	cursor, err := r.collection.Find(ctx, q.Filters, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var list []Product
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, q.Filters)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// UpdateFields applies an allow-listed $set to a product.
func (r *Repository) UpdateFields(ctx context.Context, id string, updates bson.M) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id format", apperrors.ErrInvalidArgument)
	}

	updates["updatedAt"] = time.Now()

	var product Product
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: product", apperrors.ErrNotFound)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: product with this slug already exists", apperrors.ErrConflict)
		}
		return nil, err
	}

	return &product, nil
}

// Delete removes a product and returns the removed document.
func (r *Repository) Delete(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id format", apperrors.ErrInvalidArgument)
	}

	var product Product
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: product", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &product, nil
}
