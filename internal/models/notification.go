package models

import "time"

// NotificationKind describes the event a notification reports.
type NotificationKind string

const (
	// NotificationLike is sent when someone likes the recipient's post.
	NotificationLike NotificationKind = "like"
	// NotificationComment is sent when someone comments on the recipient's post.
	NotificationComment NotificationKind = "comment"
	// NotificationFollow is sent when someone starts following the recipient.
	NotificationFollow NotificationKind = "follow"
)

// Notification is one fanout row written as a side effect of a social
// interaction. Unread state is derived from the recipient's watermark, not
// stored per row.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	SenderID    uint             `gorm:"not null" json:"sender_id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	Kind        NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	Body        string           `json:"body"`
	Link        string           `json:"link"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
