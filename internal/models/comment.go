package models

import "time"

// Comment represents a comment on a post.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"not null" json:"text"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Deleted hides the comment without removing the row, so threads keep
	// their shape.
	Deleted bool `gorm:"default:false" json:"deleted"`

	// LikesCount is not persisted; computed at query time.
	LikesCount int  `gorm:"->" json:"likes_count"`
	Liked      bool `gorm:"->" json:"liked"`

	CreatedAt time.Time `json:"created_at"`
}
