package query

import (
	"fmt"
	"strings"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// SearchListingsQuery represents a title search with offset paging
type SearchListingsQuery struct {
	Query  string
	Limit  int
	Offset int
}

// SearchListingsHandler handles listing search
type SearchListingsHandler struct {
	repo domain.ListingRepository
}

// NewSearchListingsHandler creates a new search listings handler
func NewSearchListingsHandler(repo domain.ListingRepository) *SearchListingsHandler {
	return &SearchListingsHandler{repo: repo}
}

// Handle executes the search listings query
func (h *SearchListingsHandler) Handle(query SearchListingsQuery) ([]domain.Listing, error) {
	q := strings.TrimSpace(query.Query)
	if q == "" {
		return nil, fmt.Errorf("search query is required")
	}

	listings, err := h.repo.Search(q, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	return listings, nil
}
