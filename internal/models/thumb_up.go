package models

import "time"

// ThumbUp is a user's reaction on a todo. A user holds at most one per todo.
type ThumbUp struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_thumb_ups_user_todo" json:"user_id"`
	TodoID    uint64    `gorm:"not null;uniqueIndex:idx_thumb_ups_user_todo;index" json:"todo_id"`
	CreatedAt time.Time `json:"created_at"`
}
