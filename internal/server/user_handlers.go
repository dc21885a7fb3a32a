package server

import (
	"microlog/internal/models"
	"microlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user":   user,
		"avatar": user.AvatarURL(128),
	})
}

// UpdateMyProfile handles PUT /api/users/me.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username string  `json:"username"`
		AboutMe  *string `json:"about_me"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		AboutMe:  req.AboutMe,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// GetAllUsers handles GET /api/users.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	users, err := s.userService.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUserProfile handles GET /api/users/:username. Returns the profile with
// follower counts and the first page of the user's posts.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userService.GetUserByUsername(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}

	info, err := s.followService.Info(c.UserContext(), currentUserID(c), username)
	if err != nil {
		return respondError(c, err)
	}

	posts, err := s.postService.UserPosts(c.UserContext(), username, parsePage(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":   user,
		"avatar": user.AvatarURL(128),
		"follow": info,
		"posts":  posts,
	})
}
