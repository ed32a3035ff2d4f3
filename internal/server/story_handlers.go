package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetStories handles GET /api/stories
func (s *Server) GetStories(c *fiber.Ctx) error {
	stories, err := s.storyService.VisibleStories(c.Context(), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stories)
}

// CreateStory handles POST /api/stories. Multipart body with a "file" part
// and a "time_span" form field (12, 24, 48 or 72 hours).
func (s *Server) CreateStory(c *fiber.Ctx) error {
	timeSpan := formInt(c, "time_span", 24)

	key, err := s.saveUpload(c, "file")
	if err != nil {
		return nil
	}

	story, err := s.storyService.Create(c.Context(), userID(c), timeSpan, key)
	if err != nil {
		// The upload is orphaned if validation fails; reclaim it
		_ = s.store.Delete(c.Context(), key)
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}

// DeleteStory handles DELETE /api/stories/:id
func (s *Server) DeleteStory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.storyService.Delete(c.Context(), id, userID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
