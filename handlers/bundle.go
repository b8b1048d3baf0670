package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates the handlers the route registrar wires up.
type HandlerBundle struct {
	// Overlap endpoint.
	ComputeOverlapsHandler gin.HandlerFunc

	// Busy-block endpoints.
	CreateBlockHandler gin.HandlerFunc
	ListBlocksHandler  gin.HandlerFunc
	DeleteBlockHandler gin.HandlerFunc

	// Friend endpoints.
	SearchUsersHandler          gin.HandlerFunc
	SendFriendRequestHandler    gin.HandlerFunc
	AcceptFriendRequestHandler  gin.HandlerFunc
	DeclineFriendRequestHandler gin.HandlerFunc
	ListFriendsHandler          gin.HandlerFunc
	ListPendingRequestsHandler  gin.HandlerFunc
	RemoveFriendHandler         gin.HandlerFunc
}
