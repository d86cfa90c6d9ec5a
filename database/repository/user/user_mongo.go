package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskly/database"
	"taskly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(ctx context.Context, db *mongo.Database) (UserRepository, error) {
	repo := &MongoUserRepo{coll: db.Collection("users")}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// --- Projection-based Helper Methods ---

// GetByIDWithProjection retrieves a user by its unique ID using a projection.
// A nil projection hides the password hash.
func (r *MongoUserRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error) {
	if projection == nil {
		projection = bson.M{"passwordHash": 0}
	}
	return r.findOne(ctx, bson.M{"id": id}, projection)
}

// GetByEmailWithProjection retrieves a user by its email using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoUserRepo) GetByEmailWithProjection(ctx context.Context, email string, projection bson.M) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, projection)
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter, projection bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var user models.User
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", database.MapError(err))
	}
	return &user, nil
}
