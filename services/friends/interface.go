package friends

import (
	"context"

	friendshipRepo "whenfree/database/repository/friendship"
	profileRepo "whenfree/database/repository/profile"
	"whenfree/models"
)

// FriendService drives the friend-request workflow: search, request, accept,
// decline, list, remove.
type FriendService interface {
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	SendRequest(ctx context.Context, requesterID, addresseeID string) (*models.Friendship, error)
	AcceptRequest(ctx context.Context, requestID, addresseeID string) error
	DeclineRequest(ctx context.Context, requestID, addresseeID string) error
	ListFriends(ctx context.Context, userID string) ([]models.User, error)
	ListPendingRequests(ctx context.Context, userID string) ([]models.Friendship, error)
	RemoveFriend(ctx context.Context, userID, friendID string) error
}

// DefaultFriendService is the production implementation.
type DefaultFriendService struct {
	Repo  friendshipRepo.FriendshipRepository
	Users profileRepo.UserRepository
}
