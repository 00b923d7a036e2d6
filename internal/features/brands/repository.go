package brands

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

// Repository owns the brands collection.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("brands")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, brand *Brand) error {
	brand.CreatedAt = time.Now()
	brand.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, brand)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: brand already exists", apperrors.ErrConflict)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		brand.ID = oid
	}

	return nil
}

// FindBySlug finds a brand by slug. Not found is nil, nil.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Brand, error) {
	var brand Brand
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// Exists reports whether a brand with the id exists. Product creation
// checks its references through this.
func (r *Repository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List runs the translated list query and counts with the same filter so
// the pagination metadata always matches the page.
func (r *Repository) List(ctx context.Context, q *query.Query) ([]Brand, int64, error) {
	cursor, err := r.collection.Find(ctx, q.Filters, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var list []Brand
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, q.Filters)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// UpdateFields applies an allow-listed $set to a brand.
func (r *Repository) UpdateFields(ctx context.Context, id string, updates bson.M) (*Brand, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid brand id format", apperrors.ErrInvalidArgument)
	}

	updates["updatedAt"] = time.Now()

	var brand Brand
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&brand)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: brand", apperrors.ErrNotFound)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: brand already exists", apperrors.ErrConflict)
		}
		return nil, err
	}

	return &brand, nil
}

// Delete removes a brand and returns the removed document.
func (r *Repository) Delete(ctx context.Context, id string) (*Brand, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid brand id format", apperrors.ErrInvalidArgument)
	}

	var brand Brand
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: brand", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &brand, nil
}
