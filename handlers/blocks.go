package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	blockRepo "whenfree/database/repository/block"
	"whenfree/models"
	"whenfree/services/overlap"
	"whenfree/utils"
)

// BlockHandler serves busy-block CRUD.
type BlockHandler struct {
	Repo   blockRepo.BlockRepository
	Logger *zap.Logger
}

// NewBlockHandler constructs a BlockHandler.
func NewBlockHandler(repo blockRepo.BlockRepository, logger *zap.Logger) *BlockHandler {
	return &BlockHandler{Repo: repo, Logger: logger}
}

// CreateBlockHandler handles POST /api/blocks. Malformed blocks are rejected
// here, at ingestion; the overlap engine assumes stored blocks are valid.
func (h *BlockHandler) CreateBlockHandler(c *gin.Context) {
	var req models.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	block := models.BusyBlock{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		DaysOfWeek:  req.DaysOfWeek,
		ActiveFrom:  req.ActiveFrom,
		ActiveUntil: req.ActiveUntil,
	}
	var ve *overlap.ValidationError
	if err := overlap.ValidateBlock(block); err != nil {
		if errors.As(err, &ve) {
			utils.JSONError(c, http.StatusBadRequest, "invalid busy block", ve.Fields)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "invalid busy block", err.Error())
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &block); err != nil {
		h.Logger.Error("failed to create busy block", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create busy block", nil)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// ListBlocksHandler handles GET /api/blocks/:ownerId.
func (h *BlockHandler) ListBlocksHandler(c *gin.Context) {
	ownerID := c.Param("ownerId")
	blocks, err := h.Repo.GetByOwnerID(c.Request.Context(), ownerID)
	if err != nil {
		h.Logger.Error("failed to list busy blocks", zap.String("ownerId", ownerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list busy blocks", nil)
		return
	}
	if blocks == nil {
		blocks = []models.BusyBlock{}
	}
	c.JSON(http.StatusOK, blocks)
}

// DeleteBlockHandler handles DELETE /api/blocks/:ownerId/:blockId.
func (h *BlockHandler) DeleteBlockHandler(c *gin.Context) {
	ownerID := c.Param("ownerId")
	blockID := c.Param("blockId")
	if err := h.Repo.DeleteByID(c.Request.Context(), ownerID, blockID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "busy block not found", nil)
			return
		}
		h.Logger.Error("failed to delete busy block", zap.String("blockId", blockID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete busy block", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
