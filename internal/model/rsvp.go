package model

import "time"

// EventRSVP is the join row between users and events. The composite
// primary key doubles as the uniqueness constraint, so concurrent
// duplicate adds collapse to a single row at the storage layer.
type EventRSVP struct {
	EventID   uint      `gorm:"primaryKey" json:"event_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
