package server

import (
	"github.com/gofiber/fiber/v2"
)

const notificationsPerPage = 20

// GetNotifications handles GET /api/notifications?page=N
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifications, err := s.notificationService.List(c.Context(), userID(c), parsePage(c), notificationsPerPage)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notifications)
}

// GetUnreadCount handles GET /api/notifications/unread
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.Context(), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// MarkNotificationsRead handles POST /api/notifications/read
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkRead(c.Context(), userID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
