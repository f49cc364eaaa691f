package repository

import (
	"context"
	"errors"
	"strings"

	"loppis/internal/cache"
	"loppis/internal/models"

	"gorm.io/gorm"
)

// AdRepository defines persistence operations for classified ads.
type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	GetByID(ctx context.Context, id uint) (*models.Ad, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Ad, error)
	List(ctx context.Context, limit, offset int) ([]*models.Ad, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Ad, error)
	Delete(ctx context.Context, id uint) error
}

type adRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewAdRepository creates a new ad repository
func NewAdRepository(db *gorm.DB, c *cache.Cache) AdRepository {
	return &adRepository{db: db, cache: c}
}

func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *adRepository) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	var ad models.Ad
	key := cache.AdKey(id)

	err := r.cache.Aside(ctx, key, &ad, cache.AdTTL, func() error {
		if err := r.db.WithContext(ctx).First(&ad, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Ad", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Ad, error) {
	var ads []*models.Ad
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

func (r *adRepository) List(ctx context.Context, limit, offset int) ([]*models.Ad, error) {
	var ads []*models.Ad
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

// Search matches the query case-insensitively as a substring of title, type,
// description, or location.
func (r *adRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Ad, error) {
	var ads []*models.Ad
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where(
			"LOWER(title) LIKE ? OR LOWER(type) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern, pattern,
		).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

func (r *adRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Ad{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.cache.Invalidate(ctx, cache.AdKey(id))
	return nil
}
