package domain

import (
	"time"
)

// Listing represents a classified ad (domain model). ListingID is the stable
// public identifier; ID is the storage surrogate key.
type Listing struct {
	ID           uint      `json:"id"`
	ListingID    string    `json:"listing_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	PhoneNumber  string    `json:"phone_number1"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatorID    uint      `json:"creator_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListingRepository defines the contract for listing data access
type ListingRepository interface {
	Create(listing *Listing) error
	FindByListingID(listingID string) (*Listing, error)
	FindLatest(limit int) ([]Listing, error)
	Search(query string, limit, offset int) ([]Listing, error)
	FindByCreator(creatorID uint, limit, offset int) ([]Listing, error)
	Update(listing *Listing) error
	Delete(listingID string) error
	Exists(listingID string) (bool, error)
	Count() (int64, error)
}
