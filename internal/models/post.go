package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents an uploaded picture.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `json:"location"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Private disables the comment and like display downstream; private
	// posts still appear in the feeds of followers.
	Private bool `gorm:"default:false" json:"private"`

	// File is the storage key of the picture payload.
	File string `gorm:"not null" json:"file"`

	// LikesCount and CommentsCount are not persisted; computed at query time.
	LikesCount    int `gorm:"->" json:"likes_count"`
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the requesting user liked this post (computed).
	Liked bool `gorm:"->" json:"liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Bookmark saves a post into a user's private saved list.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_pair" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// Report flags a post for moderation review.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	ReporterID uint      `gorm:"not null" json:"reporter_id"`
	CreatedAt  time.Time `json:"created_at"`
}
