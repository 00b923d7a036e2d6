package tags

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

// Repository owns the tags collection.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("tags")

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

func (r *Repository) Create(ctx context.Context, tag *Tag) error {
	tag.CreatedAt = time.Now()
	tag.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, tag)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: tag already exists", apperrors.ErrConflict)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tag.ID = oid
	}

	return nil
}

// FindBySlug finds a tag by slug. Not found is nil, nil.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Tag, error) {
	var tag Tag
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&tag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Exists reports whether a tag with the id exists. Product creation
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
func (r *Repository) List(ctx context.Context, q *query.Query) ([]Tag, int64, error) {
	cursor, err := r.collection.Find(ctx, q.Filters, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var list []Tag
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, q.Filters)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// UpdateFields applies an allow-listed $set to a tag.
func (r *Repository) UpdateFields(ctx context.Context, id string, updates bson.M) (*Tag, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tag id format", apperrors.ErrInvalidArgument)
	}

	updates["updatedAt"] = time.Now()

	var tag Tag
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tag)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: tag", apperrors.ErrNotFound)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: tag already exists", apperrors.ErrConflict)
		}
		return nil, err
	}

	return &tag, nil
}

// Delete removes a tag and returns the removed document.
func (r *Repository) Delete(ctx context.Context, id string) (*Tag, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tag id format", apperrors.ErrInvalidArgument)
	}

	var tag Tag
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&tag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: tag", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &tag, nil
}
