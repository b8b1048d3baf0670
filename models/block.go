package models

import "time"

// MinutesPerDay bounds the time-of-day fields of a BusyBlock.
const MinutesPerDay = 24 * 60

// BusyBlock is a recurring weekly occupancy definition owned by a single user.
// Times of day are minutes from midnight; a block never spans midnight.
type BusyBlock struct {
	ID          string         `bson:"id" json:"id"`
	OwnerID     string         `bson:"ownerId" json:"ownerId"`
	Title       string         `bson:"title,omitempty" json:"title,omitempty"`
	StartMinute int            `bson:"startMinute" json:"startMinute"` // e.g., 540 for 9:00 AM
	EndMinute   int            `bson:"endMinute" json:"endMinute"`     // e.g., 590 for 9:50 AM
	DaysOfWeek  []time.Weekday `bson:"daysOfWeek" json:"daysOfWeek"`   // 0=Sunday .. 6=Saturday
	ActiveFrom  string         `bson:"activeFrom" json:"activeFrom"`   // "2006-01-02", inclusive
	ActiveUntil string         `bson:"activeUntil,omitempty" json:"activeUntil,omitempty"` // inclusive; empty means unbounded
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}

// CreateBlockRequest defines the payload for creating a busy block.
type CreateBlockRequest struct {
	OwnerID     string         `json:"ownerId" binding:"required"`
	Title       string         `json:"title"`
	StartMinute int            `json:"startMinute"`
	EndMinute   int            `json:"endMinute" binding:"required"`
	DaysOfWeek  []time.Weekday `json:"daysOfWeek" binding:"required"`
	ActiveFrom  string         `json:"activeFrom" binding:"required"`
	ActiveUntil string         `json:"activeUntil"`
}
