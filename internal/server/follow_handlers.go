package server

import (
	"microlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:username/follow. Following a user
// already followed is a no-op success.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	target, err := s.followService.Follow(c.UserContext(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Following " + target.Username,
	})
}

// UnfollowUser handles DELETE /api/users/:username/follow. Unfollowing a
// user not followed is a no-op success.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	target, err := s.followService.Unfollow(c.UserContext(), currentUserID(c), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "No longer following " + target.Username,
	})
}

// GetFollowers handles GET /api/users/:username/followers.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	users, err := s.followService.Followers(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetFollowing handles GET /api/users/:username/following.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	users, err := s.followService.Following(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(fiber.Map{"users": users})
}
