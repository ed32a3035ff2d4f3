package server

import (
	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. Multipart body with a "file" part and
// optional "description" and "location" form fields.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	key, err := s.saveUpload(c, "file")
	if err != nil {
		return nil
	}

	post, err := s.postService.Create(c.Context(), userID(c),
		c.FormValue("description"), c.FormValue("location"), key)
	if err != nil {
		_ = s.store.Delete(c.Context(), key)
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.Context(), id, userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.Context(), id, userID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TogglePostPrivacy handles POST /api/posts/:id/privacy
func (s *Server) TogglePostPrivacy(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	private, err := s.postService.TogglePrivacy(c.Context(), id, userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"private": private})
}

// TogglePostLike handles POST /api/posts/:id/like
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.postService.ToggleLike(c.Context(), id, userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// GetPostLikes handles GET /api/posts/:id/likes. Returns the total and the
// first few likers for the "liked by" strip.
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.postService.LikedBySummary(c.Context(), id, userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}

// ToggleBookmark handles POST /api/posts/:id/bookmark
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	saved, err := s.postService.ToggleBookmark(c.Context(), id, userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bookmarked": saved})
}

// GetBookmarks handles GET /api/posts/bookmarks
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	posts, err := s.postService.Bookmarks(c.Context(), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// ReportPost handles POST /api/posts/:id/report
func (s *Server) ReportPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Report(c.Context(), id, userID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
