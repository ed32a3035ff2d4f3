package repository

import (
	"context"

	"instaclone/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// Conversation returns all messages between the two users, oldest first.
	Conversation(ctx context.Context, userID1, userID2 uint) ([]models.Message, error)
	// MarkSeen flags every message from senderID to recipientID as seen.
	MarkSeen(ctx context.Context, recipientID, senderID uint) error
	// Contacts returns each chat partner of the user with the ID of the
	// latest exchanged message, newest conversation first.
	Contacts(ctx context.Context, userID uint) ([]models.Contact, error)
	UnseenCount(ctx context.Context, recipientID uint) (int64, error)
	// DeleteByUser removes every message the user sent or received. Used
	// when the account is deleted.
	DeleteByUser(ctx context.Context, userID uint) error
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) Conversation(ctx context.Context, userID1, userID2 uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) MarkSeen(ctx context.Context, recipientID, senderID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND seen = ?", recipientID, senderID, false).
		Update("seen", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) Contacts(ctx context.Context, userID uint) ([]models.Contact, error) {
	// One row per partner: the max message ID of each conversation
	type row struct {
		PartnerID     uint
		LastMessageID uint
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("messages").
		Select("CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner_id, MAX(id) AS last_message_id", userID).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Group("partner_id").
		Order("last_message_id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(rows) == 0 {
		return []models.Contact{}, nil
	}

	ids := make([]uint, len(rows))
	for i, rw := range rows {
		ids[i] = rw.PartnerID
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	contacts := make([]models.Contact, 0, len(rows))
	for _, rw := range rows {
		u, ok := byID[rw.PartnerID]
		if !ok {
			continue // partner account deleted
		}
		contacts = append(contacts, models.Contact{User: u, LastMessageID: rw.LastMessageID})
	}
	return contacts, nil
}

func (r *messageRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Delete(&models.Message{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) UnseenCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND seen = ?", recipientID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
