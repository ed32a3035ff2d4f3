package repository

import (
	"context"
	"time"

	"instaclone/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID uint, page, perPage int) ([]models.Notification, error)
	// UnreadCount counts notifications for the recipient created after the
	// watermark. A nil watermark counts everything.
	UnreadCount(ctx context.Context, recipientID uint, watermark *time.Time) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uint, page, perPage int) ([]models.Notification, error) {
	if page < 1 {
		page = 1
	}
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Offset((page-1)*perPage).
		Limit(perPage).
		Preload("Sender").
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, recipientID uint, watermark *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND sender_id != ?", recipientID, recipientID)
	if watermark != nil {
		q = q.Where("created_at > ?", *watermark)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// DeleteByUser removes every notification a user produced or received. Used
// when the account is deleted.
func (r *notificationRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Delete(&models.Notification{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
