// File: database/repository/friendship/interface.go
package friendshipRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"whenfree/database"
	"whenfree/models"
)

// FriendshipRepository defines data access for friend requests and
// established friendships.
type FriendshipRepository interface {
	// Create inserts a new friendship record (normally status "pending").
	Create(ctx context.Context, f *models.Friendship) error
	// GetByID retrieves a friendship record by its ID.
	GetByID(ctx context.Context, id string) (*models.Friendship, error)
	// FindBetween finds the record linking two users in either direction.
	FindBetween(ctx context.Context, userA, userB string) (*models.Friendship, error)
	// MarkAccepted flips a pending record to accepted.
	MarkAccepted(ctx context.Context, id string) error
	// Delete removes a friendship record.
	Delete(ctx context.Context, id string) error
	// ListAcceptedFor lists accepted friendships involving the user.
	ListAcceptedFor(ctx context.Context, userID string) ([]models.Friendship, error)
	// ListPendingFor lists open requests addressed to the user.
	ListPendingFor(ctx context.Context, addresseeID string) ([]models.Friendship, error)
}

type mongoFriendshipRepo struct {
	coll *mongo.Collection
}

// NewMongoFriendshipRepo constructs a MongoDB-backed FriendshipRepository.
func NewMongoFriendshipRepo() FriendshipRepository {
	return &mongoFriendshipRepo{coll: database.DB().Collection("friendships")}
}
