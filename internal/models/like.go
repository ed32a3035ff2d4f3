package models

import "time"

// Like records a user's like on exactly one of a post or a comment.
// The (author, target) pair is unique; liking again toggles the row away
// instead of duplicating it.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_like_post;uniqueIndex:idx_like_comment" json:"author_id"`
	PostID    *uint     `gorm:"uniqueIndex:idx_like_post" json:"post_id,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_like_comment" json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// LikeSummary is the "liked by" strip on a post: the earliest likers in
// like order plus the full count.
type LikeSummary struct {
	Count int    `json:"count"`
	First []User `json:"first"`
}
