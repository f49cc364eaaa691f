package service

import (
	"context"

	"loppis/internal/models"
	"loppis/internal/notifications"
	"loppis/internal/observability"
	"loppis/internal/repository"
	"loppis/internal/validation"
)

// AdService implements ad browsing and the ownership-gated mutations.
type AdService struct {
	adRepo   repository.AdRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// CreateAdInput carries the fields a client may set on a new ad. The owner is
// deliberately absent: it is always derived from the authenticated identity.
type CreateAdInput struct {
	Title       string
	Type        string
	Location    string
	Description string
	Price       int64
	ImageURL    string
}

// RespondToAdInput carries a buyer's response to an ad.
type RespondToAdInput struct {
	AdID    uint
	ReplyTo string
	Message string
}

const (
	maxTitleLen       = 120
	maxDescriptionLen = 5000
	maxMessageLen     = 5000
)

// NewAdService returns a new AdService.
func NewAdService(adRepo repository.AdRepository, userRepo repository.UserRepository, notifier *notifications.Notifier) *AdService {
	return &AdService{adRepo: adRepo, userRepo: userRepo, notifier: notifier}
}

// CreateAd persists a new ad owned by ownerID. Any owner information in the
// request payload never reaches this method; the owner is fixed here, at
// creation, from the authenticated identity.
func (s *AdService) CreateAd(ctx context.Context, ownerID uint, in CreateAdInput) (*models.Ad, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 120 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}
	if in.Price < 0 {
		return nil, models.NewValidationError("Price must not be negative")
	}

	ad := &models.Ad{
		UserID:      ownerID,
		Title:       in.Title,
		Type:        in.Type,
		Location:    in.Location,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
	}

	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}

	observability.AdsCreated.Inc()
	return ad, nil
}

// GetAd returns a single ad by ID.
func (s *AdService) GetAd(ctx context.Context, id uint) (*models.Ad, error) {
	return s.adRepo.GetByID(ctx, id)
}

// ListAds returns the newest ads first, bounded by limit/offset.
func (s *AdService) ListAds(ctx context.Context, limit, offset int) ([]*models.Ad, error) {
	return s.adRepo.List(ctx, limit, offset)
}

// SearchAds matches query case-insensitively against title, type,
// description, and location.
func (s *AdService) SearchAds(ctx context.Context, query string, limit, offset int) ([]*models.Ad, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.adRepo.Search(ctx, query, limit, offset)
}

// ListUserAds returns the ads owned by the given user, newest first.
func (s *AdService) ListUserAds(ctx context.Context, userID uint, limit, offset int) ([]*models.Ad, error) {
	return s.adRepo.GetByUserID(ctx, userID, limit, offset)
}

// DeleteAd removes an ad if and only if it is owned by userID.
//
// A missing ad is NotFound, a mismatched owner is Forbidden; the two outcomes
// stay distinct so callers can map them to different responses. On Forbidden
// the ad is untouched.
func (s *AdService) DeleteAd(ctx context.Context, userID, adID uint) error {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return err
	}

	if ad.UserID != userID {
		return models.NewForbiddenError("You can only delete your own ads")
	}

	if err := s.adRepo.Delete(ctx, adID); err != nil {
		return err
	}

	observability.AdsDeleted.Inc()
	return nil
}

// RespondToAd publishes an ad-response event for the mail pipeline. The
// seller's address is resolved from the ad's owner; actual delivery happens
// outside this service.
func (s *AdService) RespondToAd(ctx context.Context, in RespondToAdInput) error {
	if err := validation.ValidateEmail(in.ReplyTo); err != nil {
		return models.NewValidationError(err.Error())
	}
	if in.Message == "" {
		return models.NewValidationError("Message is required")
	}
	if len(in.Message) > maxMessageLen {
		return models.NewValidationError("Message too long (max 5000 characters)")
	}

	ad, err := s.adRepo.GetByID(ctx, in.AdID)
	if err != nil {
		return err
	}

	owner, err := s.userRepo.GetByID(ctx, ad.UserID)
	if err != nil {
		return err
	}

	event := notifications.AdResponseEvent{
		AdID:        ad.ID,
		AdTitle:     ad.Title,
		SellerEmail: owner.Email,
		ReplyTo:     in.ReplyTo,
		Message:     in.Message,
	}
	if err := s.notifier.PublishAdResponse(ctx, event); err != nil {
		return models.NewInternalError(err)
	}

	return nil
}
