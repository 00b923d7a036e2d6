package auth

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

// Repository owns the users collection. The unique email index is the
// authority on email uniqueness, application-level pre-checks only give
// nicer error messages.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isBanned", Value: 1}},
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new user. A duplicate email surfaces as ErrConflict,
// which closes the register/activate race the pre-check can't.
func (r *Repository) Create(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return nil
}

// FindByEmail finds a user by email. Not found is nil, nil.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by hex id.
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id format", apperrors.ErrInvalidArgument)
	}

	var user User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// EmailExists checks whether an account with the email is registered.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List runs the translated list query and counts with the same filter so
// the pagination metadata always matches the page.
func (r *Repository) List(ctx context.Context, q *query.Query) ([]User, int64, error) {
	opts := q.FindOptions()
	if len(q.Fields) == 0 {
		opts.SetProjection(bson.M{"password": 0})
	}

	cursor, err := r.collection.Find(ctx, q.Filters, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, q.Filters)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateFields applies an allow-listed $set to a user.
func (r *Repository) UpdateFields(ctx context.Context, id string, updates bson.M) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id format", apperrors.ErrInvalidArgument)
	}

	updates["updatedAt"] = time.Now()

	var user User
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, err
	}

	return &user, nil
}

// SetBanned toggles the banned flag.
func (r *Repository) SetBanned(ctx context.Context, id string, banned bool) (*User, error) {
	return r.UpdateFields(ctx, id, bson.M{"isBanned": banned})
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: user", apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a user and returns the removed document.
func (r *Repository) Delete(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id format", apperrors.ErrInvalidArgument)
	}

	var user User
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
