// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Instaclone application.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Username    string `gorm:"unique;not null" json:"username"`
	Email       string `gorm:"unique;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	Description string `gorm:"default:'no description filled in'" json:"description"`
	Avatar      string `gorm:"default:'/static/img/default-user.png'" json:"avatar"`

	// NotRecommend opts the user out of appearing in friend suggestions.
	NotRecommend bool `gorm:"default:false" json:"not_recommend"`

	// Read watermarks. Notifications older than LastNotificationReadAt are
	// implicitly read; there is no per-notification read flag.
	LastNotificationReadAt *time.Time `json:"last_notification_read_at,omitempty"`
	LastMessageReadAt      *time.Time `json:"last_message_read_at,omitempty"`
	LastMessageSentAt      *time.Time `json:"last_message_sent_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts   []Post  `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Stories []Story `gorm:"foreignKey:AuthorID" json:"stories,omitempty"`
}
