package server

import (
	"instaclone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages/:userId
func (s *Server) SendMessage(c *fiber.Ctx) error {
	recipientID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Send(c.Context(), userID(c), recipientID, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversation handles GET /api/messages/:userId. Reading the thread
// marks the partner's messages as seen.
func (s *Server) GetConversation(c *fiber.Ctx) error {
	partnerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.Conversation(c.Context(), userID(c), partnerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(messages)
}

// RefreshConversation handles GET /api/messages/:userId/refresh, the
// client's poll endpoint. Answers 204 without touching the messages table
// unless the partner sent something in the last two seconds.
func (s *Server) RefreshConversation(c *fiber.Ctx) error {
	partnerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	messages, fresh, err := s.messageService.Refresh(c.Context(), userID(c), partnerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !fresh {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(messages)
}

// GetContacts handles GET /api/messages/contacts
func (s *Server) GetContacts(c *fiber.Ctx) error {
	contacts, err := s.messageService.Contacts(c.Context(), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(contacts)
}

// GetUnseenCount handles GET /api/messages/unseen
func (s *Server) GetUnseenCount(c *fiber.Ctx) error {
	count, err := s.messageService.UnseenCount(c.Context(), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unseen": count})
}
