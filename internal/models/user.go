package models

import (
	"time"
)

type User struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Nickname        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"nickname"`
	PasswordHash    string    `gorm:"type:varchar(255);not null" json:"-"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	ProfileImageURL *string   `gorm:"type:varchar(1000)" json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Todos    []Todo    `gorm:"foreignKey:UserID" json:"-"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"-"`
	ThumbUps []ThumbUp `gorm:"foreignKey:UserID" json:"-"`
}
