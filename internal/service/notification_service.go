// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"time"

	"instaclone/internal/cache"
	"instaclone/internal/models"
	"instaclone/internal/observability"
	"instaclone/internal/repository"
)

// NotificationService handles notification fanout and the read watermark.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	now              func() time.Time
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		now:              time.Now,
	}
}

// Notify writes one notification row for the recipient. Events a user
// triggers on their own content are suppressed: nobody needs to hear that
// they liked their own post.
func (s *NotificationService) Notify(ctx context.Context, senderID, recipientID uint, kind models.NotificationKind, body, link string) error {
	if senderID == recipientID {
		observability.NotificationFanout.WithLabelValues(string(kind), "suppressed").Inc()
		return nil
	}

	notification := &models.Notification{
		SenderID:    senderID,
		RecipientID: recipientID,
		Kind:        kind,
		Body:        body,
		Link:        link,
		CreatedAt:   s.now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	observability.NotificationFanout.WithLabelValues(string(kind), "created").Inc()
	cache.Invalidate(ctx, cache.UnreadKey(recipientID))
	return nil
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, page, perPage int) ([]models.Notification, error) {
	return s.notificationRepo.ListByRecipient(ctx, userID, page, perPage)
}

// UnreadCount returns the number of notifications newer than the user's
// read watermark.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if n, ok := cache.GetInt(ctx, cache.UnreadKey(userID)); ok {
		return n, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	count, err := s.notificationRepo.UnreadCount(ctx, userID, user.LastNotificationReadAt)
	if err != nil {
		return 0, err
	}

	cache.SetInt(ctx, cache.UnreadKey(userID), count, cache.UnreadTTL)
	return count, nil
}

// MarkRead advances the watermark to now. Everything created up to this
// moment counts as read; there is no per-row state to update.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint) error {
	if err := s.userRepo.SetNotificationReadAt(ctx, userID, s.now()); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.UnreadKey(userID))
	return nil
}
