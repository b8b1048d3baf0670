package friends

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"whenfree/models"
)

const searchLimit = 20

// Workflow violations surfaced to the caller as conflict-style errors.
var (
	ErrSelfRequest     = errors.New("cannot send a friend request to yourself")
	ErrAlreadyLinked   = errors.New("a request or friendship between these users already exists")
	ErrRequestNotFound = errors.New("friend request not found")
	ErrNotAddressee    = errors.New("only the addressee may respond to a request")
	ErrNotFriends      = errors.New("users are not friends")
	ErrUserNotFound    = errors.New("user not found")
)

func (s *DefaultFriendService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	return s.Users.Search(ctx, query, searchLimit)
}

func (s *DefaultFriendService) SendRequest(ctx context.Context, requesterID, addresseeID string) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, ErrSelfRequest
	}
	if _, err := s.Users.GetByID(ctx, addresseeID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup addressee: %w", err)
	}

	existing, err := s.Repo.FindBetween(ctx, requesterID, addresseeID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check existing friendship: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyLinked
	}

	f := &models.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendshipPending,
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create friend request: %w", err)
	}
	return f, nil
}

func (s *DefaultFriendService) AcceptRequest(ctx context.Context, requestID, addresseeID string) error {
	f, err := s.lookupPending(ctx, requestID, addresseeID)
	if err != nil {
		return err
	}
	if err := s.Repo.MarkAccepted(ctx, f.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("accept friend request: %w", err)
	}
	return nil
}

func (s *DefaultFriendService) DeclineRequest(ctx context.Context, requestID, addresseeID string) error {
	f, err := s.lookupPending(ctx, requestID, addresseeID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, f.ID); err != nil {
		return fmt.Errorf("decline friend request: %w", err)
	}
	return nil
}

func (s *DefaultFriendService) lookupPending(ctx context.Context, requestID, addresseeID string) (*models.Friendship, error) {
	f, err := s.Repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("lookup friend request: %w", err)
	}
	if f.Status != models.FriendshipPending {
		return nil, ErrRequestNotFound
	}
	if f.AddresseeID != addresseeID {
		return nil, ErrNotAddressee
	}
	return f, nil
}

func (s *DefaultFriendService) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	links, err := s.Repo.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}
	if len(links) == 0 {
		return []models.User{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, f := range links {
		if f.RequesterID == userID {
			ids = append(ids, f.AddresseeID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}
	return s.Users.GetByIDs(ctx, ids)
}

func (s *DefaultFriendService) ListPendingRequests(ctx context.Context, userID string) ([]models.Friendship, error) {
	return s.Repo.ListPendingFor(ctx, userID)
}

func (s *DefaultFriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	f, err := s.Repo.FindBetween(ctx, userID, friendID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFriends
		}
		return fmt.Errorf("lookup friendship: %w", err)
	}
	if f.Status != models.FriendshipAccepted {
		return ErrNotFriends
	}
	if err := s.Repo.Delete(ctx, f.ID); err != nil {
		return fmt.Errorf("remove friendship: %w", err)
	}
	return nil
}
