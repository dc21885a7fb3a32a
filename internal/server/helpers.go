package server

import (
	"errors"

	"microlog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps an application error to its HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR", "INVALID_EDGE":
		return fiber.StatusBadRequest
	case "DUPLICATE_IDENTITY":
		return fiber.StatusConflict
	case "INVALID_CREDENTIAL", "INVALID_TOKEN", "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error response for a service-layer error.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// currentUserID returns the authenticated user's ID from locals. Zero when
// the request is unauthenticated.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// parsePage extracts the 1-based "page" query parameter.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}
