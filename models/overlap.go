package models

import "time"

// OverlapRequest defines the payload for a shared free-time query.
type OverlapRequest struct {
	UserIDs      []string  `json:"userIds" binding:"required"`
	RangeStart   time.Time `json:"rangeStart" binding:"required"`
	RangeEnd     time.Time `json:"rangeEnd" binding:"required"`
	MinFreeUsers int       `json:"minFreeUsers"`
}

// OverlapWindow is a maximal half-open interval [Start, End) during which the
// exact set FreeUserIDs is simultaneously free. Windows in a result are
// disjoint and ordered by Start; FreeUserIDs is sorted and Count equals its
// length.
type OverlapWindow struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	FreeUserIDs []string  `json:"freeUserIds"`
	Count       int       `json:"count"`
}
