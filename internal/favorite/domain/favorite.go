package domain

import (
	"context"
	"time"
)

// FavoriteRef identifies a favorited listing by its stable public identifier.
// Uniqueness is enforced per owner (device or user); order carries no meaning.
type FavoriteRef struct {
	ListingID string `json:"listing_id"`
}

// Favorite is one (user, listing) bookmark row in the authoritative store
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_favorites_user_listing;not null"`
	ListingID string    `json:"listing_id" gorm:"uniqueIndex:idx_favorites_user_listing;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// Ref returns the row's listing reference
func (f Favorite) Ref() FavoriteRef {
	return FavoriteRef{ListingID: f.ListingID}
}

// FavoriteRepository is the authoritative, user-scoped favorite store.
// ListByUser returns an empty set, not an error, when the user has none.
// Remove is a no-op when the pair is absent.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]FavoriteRef, error)
	Add(ctx context.Context, userID uint, listingID string) error
	Remove(ctx context.Context, userID uint, listingID string) error
}

// DeviceFavoriteStore is the device-scoped favorite set, usable before any
// authentication exists. ReadAll never fails on absent or corrupt data; every
// mutation overwrites the whole persisted set.
type DeviceFavoriteStore interface {
	ReadAll(ctx context.Context, deviceID string) ([]FavoriteRef, error)
	Toggle(ctx context.Context, deviceID, listingID string) ([]FavoriteRef, error)
}

// ListingChecker confirms that a listing identifier still denotes a live
// record. A deleted or unknown listing yields false with a nil error; errors
// are reserved for connectivity faults.
type ListingChecker interface {
	Exists(ctx context.Context, listingID string) (bool, error)
}

// RefSet builds a membership index over refs
func RefSet(refs []FavoriteRef) map[string]struct{} {
	set := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		set[ref.ListingID] = struct{}{}
	}
	return set
}
