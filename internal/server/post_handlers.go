package server

import (
	"microlog/internal/models"
	"microlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Body     string `json:"body"`
		Language string `json:"language"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:   currentUserID(c),
		Body:     req.Body,
		Language: req.Language,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
	}

	post, svcErr := s.postService.GetPost(c.UserContext(), uint(id))
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(fiber.Map{"post": post})
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
	}

	if svcErr := s.postService.DeletePost(c.UserContext(), currentUserID(c), uint(id)); svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetFeed handles GET /api/feed: the caller's own posts merged with posts
// by everyone they follow, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePage(c)
	posts, err := s.postService.Feed(c.UserContext(), currentUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  page,
	})
}

// Explore handles GET /api/posts: all posts, newest first.
func (s *Server) Explore(c *fiber.Ctx) error {
	page := parsePage(c)
	posts, err := s.postService.Explore(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  page,
	})
}

// GetUserPosts handles GET /api/users/:username/posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	page := parsePage(c)
	posts, err := s.postService.UserPosts(c.UserContext(), c.Params("username"), page)
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  page,
	})
}

// SearchPosts handles GET /api/posts/search?q=. Without a search backend the
// result is an empty list, not an error.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	query := c.Query("q")
	page := parsePage(c)

	posts, total, err := s.postService.SearchPosts(c.UserContext(), query, page)
	if err != nil {
		return respondError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(fiber.Map{
		"posts": posts,
		"total": total,
		"page":  page,
	})
}
