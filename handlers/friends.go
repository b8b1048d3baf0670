package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whenfree/models"
	"whenfree/services/friends"
	"whenfree/utils"
)

// FriendHandler serves the friend-request workflow.
type FriendHandler struct {
	Service friends.FriendService
	Logger  *zap.Logger
}

// NewFriendHandler constructs a FriendHandler.
func NewFriendHandler(svc friends.FriendService, logger *zap.Logger) *FriendHandler {
	return &FriendHandler{Service: svc, Logger: logger}
}

// SearchUsersHandler handles GET /api/friends/search?q=...
func (h *FriendHandler) SearchUsersHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing search query", "provide a q parameter")
		return
	}
	users, err := h.Service.SearchUsers(c.Request.Context(), query)
	if err != nil {
		h.Logger.Error("user search failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to search users", nil)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// SendRequestHandler handles POST /api/friends/request.
func (h *FriendHandler) SendRequestHandler(c *gin.Context) {
	var input models.FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	f, err := h.Service.SendRequest(c.Request.Context(), input.RequesterID, input.AddresseeID)
	if err != nil {
		switch {
		case errors.Is(err, friends.ErrSelfRequest), errors.Is(err, friends.ErrAlreadyLinked):
			utils.JSONError(c, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, friends.ErrUserNotFound):
			utils.JSONError(c, http.StatusNotFound, err.Error(), nil)
		default:
			h.Logger.Error("failed to send friend request", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to send friend request", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, f)
}

// AcceptRequestHandler handles POST /api/friends/accept.
func (h *FriendHandler) AcceptRequestHandler(c *gin.Context) {
	h.respondToRequest(c, h.Service.AcceptRequest)
}

// DeclineRequestHandler handles POST /api/friends/decline.
func (h *FriendHandler) DeclineRequestHandler(c *gin.Context) {
	h.respondToRequest(c, h.Service.DeclineRequest)
}

func (h *FriendHandler) respondToRequest(c *gin.Context, respond func(ctx context.Context, requestID, addresseeID string) error) {
	var input struct {
		RequestID   string `json:"requestId" binding:"required"`
		AddresseeID string `json:"addresseeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	err := respond(c.Request.Context(), input.RequestID, input.AddresseeID)
	if err != nil {
		switch {
		case errors.Is(err, friends.ErrRequestNotFound):
			utils.JSONError(c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, friends.ErrNotAddressee):
			utils.JSONError(c, http.StatusForbidden, err.Error(), nil)
		default:
			h.Logger.Error("failed to respond to friend request", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to respond to friend request", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListFriendsHandler handles GET /api/friends/:userId.
func (h *FriendHandler) ListFriendsHandler(c *gin.Context) {
	userID := c.Param("userId")
	users, err := h.Service.ListFriends(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list friends", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list friends", nil)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// ListPendingRequestsHandler handles GET /api/friends/:userId/requests.
func (h *FriendHandler) ListPendingRequestsHandler(c *gin.Context) {
	userID := c.Param("userId")
	reqs, err := h.Service.ListPendingRequests(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list friend requests", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list friend requests", nil)
		return
	}
	if reqs == nil {
		reqs = []models.Friendship{}
	}
	c.JSON(http.StatusOK, reqs)
}

// RemoveFriendHandler handles DELETE /api/friends/:userId/:friendId.
func (h *FriendHandler) RemoveFriendHandler(c *gin.Context) {
	userID := c.Param("userId")
	friendID := c.Param("friendId")
	if err := h.Service.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		if errors.Is(err, friends.ErrNotFriends) {
			utils.JSONError(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		h.Logger.Error("failed to remove friend", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove friend", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
