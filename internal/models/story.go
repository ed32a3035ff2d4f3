package models

import "time"

// Story time spans, in hours. A story is visible while the hours elapsed
// since its creation are below its span, and is purged on the next read
// after that.
const (
	StorySpan12 = 12
	StorySpan24 = 24
	StorySpan48 = 48
	StorySpan72 = 72
)

// ValidStorySpan reports whether span is one of the supported time spans.
func ValidStorySpan(span int) bool {
	switch span {
	case StorySpan12, StorySpan24, StorySpan48, StorySpan72:
		return true
	}
	return false
}

// Story represents an ephemeral post.
type Story struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	AuthorID uint `gorm:"not null;index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// TimeSpan is the lifetime in hours: 12, 24, 48 or 72.
	TimeSpan int `gorm:"not null" json:"time_span"`

	// File is the storage key of the story payload.
	File string `gorm:"not null" json:"file"`

	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the story's lifetime has elapsed at now.
func (s *Story) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt).Hours() >= float64(s.TimeSpan)
}
