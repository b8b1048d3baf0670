package models

import "time"

// Friendship statuses.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship links two users. While Status is "pending" it represents an open
// friend request from RequesterID to AddresseeID.
type Friendship struct {
	ID          string    `bson:"id" json:"id"`
	RequesterID string    `bson:"requesterId" json:"requesterId"`
	AddresseeID string    `bson:"addresseeId" json:"addresseeId"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	RespondedAt time.Time `bson:"respondedAt,omitempty" json:"respondedAt,omitzero"`
}

// FriendRequestInput defines the payload for sending a friend request.
type FriendRequestInput struct {
	RequesterID string `json:"requesterId" binding:"required"`
	AddresseeID string `json:"addresseeId" binding:"required"`
}
