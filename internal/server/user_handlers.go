package server

import (
	"loppis/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyPage returns the authenticated user's profile with their own ads.
func (s *Server) GetMyPage(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthenticatedError("Authorization required"))
	}

	limit, _ := parsePagination(c)

	user, err := s.userRepo.GetByIDWithAds(c.Context(), userID, limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
