package server

import (
	"instaclone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetProfile(c.Context(), userID(c), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetProfile(c.Context(), id, userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me. The avatar arrives as a
// multipart upload; description as a form field.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	description := c.FormValue("description")

	avatar := ""
	if _, err := c.FormFile("avatar"); err == nil {
		key, err := s.saveUpload(c, "avatar")
		if err != nil {
			return nil
		}
		avatar = key
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID(c), description, avatar)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// SetRecommendable handles PUT /api/users/me/recommendable
func (s *Server) SetRecommendable(c *fiber.Ctx) error {
	var req struct {
		Recommendable bool `json:"recommendable"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.SetNotRecommend(c.Context(), userID(c), !req.Recommendable); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"recommendable": req.Recommendable})
}

// SearchUsers handles GET /api/users/search?q=...&page=N
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	result, err := s.userService.Search(c.Context(), userID(c), query, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// DeleteMyAccount handles DELETE /api/users/me
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.Delete(c.Context(), userID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postService.ByAuthor(c.Context(), id, userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
