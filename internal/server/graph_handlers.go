package server

import (
	"instaclone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.graphService.ToggleFollow(c.Context(), userID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// ToggleBlock handles POST /api/users/:id/block
func (s *Server) ToggleBlock(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blocked, err := s.graphService.ToggleBlock(c.Context(), userID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"blocked": blocked})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.graphService.Followers(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.graphService.Following(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetRecommendations handles GET /api/recommendations?strategy=...
// Strategies: "follows_you" (default) and "by_mutual". The display order is
// shuffled here, at the edge, so the strategies stay deterministic.
func (s *Server) GetRecommendations(c *fiber.Ctx) error {
	strategy := c.Query("strategy", "follows_you")

	var recs []models.Recommendation
	var err error
	switch strategy {
	case "follows_you":
		recs, err = s.recommendService.FollowsYou(c.Context(), userID(c))
	case "by_mutual":
		recs, err = s.recommendService.ByMutual(c.Context(), userID(c))
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown recommendation strategy"))
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	s.recommendService.Shuffle(recs)
	return c.JSON(recs)
}
