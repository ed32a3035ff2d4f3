package server

import (
	"instaclone/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?page=N
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.AssembleFeed(c.Context(), userID(c), parsePage(c), service.DefaultFeedPageSize)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
