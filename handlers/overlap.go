package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whenfree/config"
	"whenfree/models"
	"whenfree/services/overlap"
	"whenfree/utils"
)

// OverlapHandler serves shared free-time queries.
type OverlapHandler struct {
	Service overlap.OverlapService
	Logger  *zap.Logger
}

// NewOverlapHandler constructs an OverlapHandler.
func NewOverlapHandler(svc overlap.OverlapService, logger *zap.Logger) *OverlapHandler {
	return &OverlapHandler{Service: svc, Logger: logger}
}

// ComputeOverlapsHandler handles POST /api/overlap. The request is validated
// field by field before any data is fetched; qualifying windows serialize as
// an ordered JSON list and "no windows" is an empty list, not an error.
func (h *OverlapHandler) ComputeOverlapsHandler(c *gin.Context) {
	var req models.OverlapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if fields := validateOverlapRequest(&req); len(fields) > 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid request parameters", fields)
		return
	}

	windows, err := h.Service.SharedFreeWindows(c.Request.Context(), req.UserIDs, req.RangeStart, req.RangeEnd, req.MinFreeUsers)
	if err != nil {
		if errors.Is(err, overlap.ErrStoreUnavailable) {
			utils.JSONError(c, http.StatusServiceUnavailable, "busy block store unavailable", "please retry shortly")
			return
		}
		h.Logger.Error("overlap computation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute overlap windows", nil)
		return
	}

	if windows == nil {
		windows = []models.OverlapWindow{}
	}
	c.JSON(http.StatusOK, windows)
}

// validateOverlapRequest applies the request bounds: 1..MaxQueryUsers distinct
// users, a forward non-degenerate range capped at MaxRangeDays, and a
// threshold within 1..MaxMinFreeUsers (defaulted when omitted).
func validateOverlapRequest(req *models.OverlapRequest) []overlap.FieldError {
	cfg := config.AppConfig
	var fields []overlap.FieldError
	add := func(field, msg string) {
		fields = append(fields, overlap.FieldError{Field: field, Message: msg})
	}

	if len(req.UserIDs) == 0 {
		add("userIds", "at least one user ID is required")
	} else if len(req.UserIDs) > cfg.MaxQueryUsers {
		add("userIds", "too many users in one query")
	}
	seen := make(map[string]bool, len(req.UserIDs))
	for _, id := range req.UserIDs {
		if id == "" {
			add("userIds", "user IDs must not be empty")
			break
		}
		if seen[id] {
			add("userIds", "user IDs must be distinct")
			break
		}
		seen[id] = true
	}

	if !req.RangeStart.Before(req.RangeEnd) {
		add("rangeEnd", "must be after rangeStart")
	} else if req.RangeEnd.Sub(req.RangeStart) > time.Duration(cfg.MaxRangeDays)*24*time.Hour {
		add("rangeEnd", "query range is too long")
	}

	if req.MinFreeUsers == 0 {
		req.MinFreeUsers = cfg.DefaultMinFreeUsers
	}
	if req.MinFreeUsers < 1 || req.MinFreeUsers > cfg.MaxMinFreeUsers {
		add("minFreeUsers", "threshold out of range")
	}

	return fields
}
