package query

import (
	"fmt"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// GetListingQuery represents the query to get one listing by public id
type GetListingQuery struct {
	ListingID string
}

// GetListingHandler handles get listing query
type GetListingHandler struct {
	repo domain.ListingRepository
}

// NewGetListingHandler creates a new get listing handler
func NewGetListingHandler(repo domain.ListingRepository) *GetListingHandler {
	return &GetListingHandler{repo: repo}
}

// Handle executes the get listing query
func (h *GetListingHandler) Handle(query GetListingQuery) (*domain.Listing, error) {
	if query.ListingID == "" {
		return nil, fmt.Errorf("listing id is required")
	}

	listing, err := h.repo.FindByListingID(query.ListingID)
	if err != nil {
		return nil, fmt.Errorf("listing not found: %w", err)
	}

	return listing, nil
}
