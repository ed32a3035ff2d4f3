package service

import (
	"context"
	"strings"
	"time"

	"instaclone/internal/models"
	"instaclone/internal/repository"
)

// RefreshWindow is how recent a partner's last send must be for a poll to
// return fresh data. Older than this and the poll short-circuits.
const RefreshWindow = 2 * time.Second

// MessageService handles direct messages.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	graph       *GraphService
	now         func() time.Time
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, graph *GraphService) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		graph:       graph,
		now:         time.Now,
	}
}

// Send delivers a direct message and stamps the sender's last-sent time,
// which drives the poll short-circuit on the recipient's side.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Message body is required")
	}
	if senderID == recipientID {
		return nil, models.NewValidationError("Cannot message yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}
	if err := s.graph.BlockGuard(ctx, senderID, recipientID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   s.now(),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.userRepo.SetMessageSentAt(ctx, senderID, message.CreatedAt); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation returns the full thread with the partner and marks the
// partner's messages as seen.
func (s *MessageService) Conversation(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	if err := s.graph.BlockGuard(ctx, userID, partnerID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.Conversation(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkSeen(ctx, userID, partnerID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetMessageReadAt(ctx, userID, s.now()); err != nil {
		return nil, err
	}
	return messages, nil
}

// Refresh is the polling endpoint's backing logic. It returns the thread
// only when the partner sent something within RefreshWindow; otherwise it
// reports no change so the handler can answer 204 without touching the
// messages table.
func (s *MessageService) Refresh(ctx context.Context, userID, partnerID uint) ([]models.Message, bool, error) {
	partner, err := s.userRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, false, err
	}

	if partner.LastMessageSentAt == nil || s.now().Sub(*partner.LastMessageSentAt) > RefreshWindow {
		return nil, false, nil
	}

	messages, err := s.Conversation(ctx, userID, partnerID)
	if err != nil {
		return nil, false, err
	}
	return messages, true, nil
}

// Contacts returns the user's chat overview, newest conversation first.
func (s *MessageService) Contacts(ctx context.Context, userID uint) ([]models.Contact, error) {
	return s.messageRepo.Contacts(ctx, userID)
}

// UnseenCount returns how many received messages are still unseen.
func (s *MessageService) UnseenCount(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.UnseenCount(ctx, userID)
}
