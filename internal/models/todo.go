package models

import (
	"time"
)

type Todo struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(500);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `gorm:"<-:create;index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []Comment `gorm:"foreignKey:TodoID" json:"comments,omitempty"`
	ThumbUps []ThumbUp `gorm:"foreignKey:TodoID" json:"-"`
}

// TodoSummary is the read model produced by the listing query: one todo joined
// with its owner's display name and its thumbs-up count.
type TodoSummary struct {
	ID           uint64    `json:"id"`
	AuthorName   string    `json:"author_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	IsCompleted  bool      `json:"is_completed"`
	ThumbUpCount int64     `json:"thumb_up_count"`
	CreatedAt    time.Time `json:"created_at"`
}
