package server

import (
	"errors"
	"log/slog"

	"loppis/internal/middleware"
	"loppis/internal/models"
	"loppis/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createAdRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

type respondToAdRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// GetAds returns the newest ads, paginated.
func (s *Server) GetAds(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	ads, err := s.adService.ListAds(c.Context(), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ads":    ads,
		"limit":  limit,
		"offset": offset,
	})
}

// SearchAds returns ads matching the q query param.
func (s *Server) SearchAds(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	ads, err := s.adService.SearchAds(c.Context(), c.Query("q"), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ads":    ads,
		"limit":  limit,
		"offset": offset,
	})
}

// GetAd returns a single ad by ID.
func (s *Server) GetAd(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return models.RespondWithAppError(c, err)
	}

	ad, err := s.adService.GetAd(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ad)
}

// CreateAd creates a new ad owned by the authenticated user. Ownership comes
// from the access token alone; nothing in the payload can redirect it.
func (s *Server) CreateAd(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthenticatedError("Authorization required"))
	}

	var req createAdRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	ad, err := s.adService.CreateAd(c.Context(), userID, service.CreateAdInput{
		Title:       req.Title,
		Type:        req.Type,
		Location:    req.Location,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "ad created",
		slog.Uint64("ad_id", uint64(ad.ID)))

	return c.Status(fiber.StatusCreated).JSON(ad)
}

// DeleteAd deletes an ad if the authenticated user owns it.
func (s *Server) DeleteAd(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthenticatedError("Authorization required"))
	}

	id, err := parseID(c, "id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return models.RespondWithAppError(c, err)
	}

	if err := s.adService.DeleteAd(c.Context(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "ad deleted",
		slog.Uint64("ad_id", uint64(id)))

	return c.SendStatus(fiber.StatusNoContent)
}

// RespondToAd accepts a buyer's message for the seller. The event is handed
// to the mail pipeline asynchronously, hence 202.
func (s *Server) RespondToAd(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return models.RespondWithAppError(c, err)
	}

	var req respondToAdRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.adService.RespondToAd(c.Context(), service.RespondToAdInput{
		AdID:    id,
		ReplyTo: req.Email,
		Message: req.Message,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "accepted",
	})
}
