package query

import (
	"fmt"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// LatestListingsQuery represents the query for the home feed
type LatestListingsQuery struct {
	Limit int
}

// LatestListingsHandler handles the latest listings query
type LatestListingsHandler struct {
	repo domain.ListingRepository
}

// NewLatestListingsHandler creates a new latest listings handler
func NewLatestListingsHandler(repo domain.ListingRepository) *LatestListingsHandler {
	return &LatestListingsHandler{repo: repo}
}

// Handle executes the latest listings query
func (h *LatestListingsHandler) Handle(query LatestListingsQuery) ([]domain.Listing, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	listings, err := h.repo.FindLatest(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest listings: %w", err)
	}

	return listings, nil
}
