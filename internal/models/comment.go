package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TodoID    uint64    `gorm:"not null;index" json:"todo_id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
