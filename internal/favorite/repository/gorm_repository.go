package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// ListByUser returns every favorite reference owned by the user.
// An empty result is a valid state, not an error.
func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]domain.FavoriteRef, error) {
	var rows []domain.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, domain.NewBackendError(domain.ErrKindConnectivity, "favorites.list", err)
	}

	refs := make([]domain.FavoriteRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, row.Ref())
	}
	return refs, nil
}

// Add inserts the (user, listing) pair. A duplicate insert surfaces as a
// constraint error so callers can treat the state as already satisfied.
func (r *GormFavoriteRepository) Add(ctx context.Context, userID uint, listingID string) error {
	fav := domain.Favorite{UserID: userID, ListingID: listingID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewBackendError(domain.ErrKindConstraint, "favorites.add", err)
		}
		return domain.NewBackendError(domain.ErrKindConnectivity, "favorites.add", err)
	}
	return nil
}

// Remove deletes the (user, listing) pair, succeeding even when it is absent
func (r *GormFavoriteRepository) Remove(ctx context.Context, userID uint, listingID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&domain.Favorite{}).Error; err != nil {
		return domain.NewBackendError(domain.ErrKindConnectivity, "favorites.remove", err)
	}
	return nil
}

// AutoMigrate creates the favorites table
func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}
