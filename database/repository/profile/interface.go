// File: database/repository/profile/interface.go
package profileRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"whenfree/database"
	"whenfree/models"
)

// UserRepository defines lookup access to user profiles.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs retrieves the users matching the given IDs.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// Search finds users whose name or email starts with the query string.
	Search(ctx context.Context, query string, limit int64) ([]models.User, error)
	// Create inserts a new user profile.
	Create(ctx context.Context, user *models.User) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a MongoDB-backed UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{coll: database.DB().Collection("users")}
}
