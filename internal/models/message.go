package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Body        string    `gorm:"not null" json:"body"`
	Seen        bool      `gorm:"default:false" json:"seen"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// Contact is one row of the chat overview: the other user plus the ID of
// the latest message exchanged with them, used for newest-first ordering.
type Contact struct {
	User          User `json:"user"`
	LastMessageID uint `json:"last_message_id"`
}
