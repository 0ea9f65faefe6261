package query

import (
	"fmt"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// UserListingsQuery represents the query for a user's own listings
type UserListingsQuery struct {
	CreatorID uint
	Limit     int
	Offset    int
}

// UserListingsHandler handles the user listings query
type UserListingsHandler struct {
	repo domain.ListingRepository
}

// NewUserListingsHandler creates a new user listings handler
func NewUserListingsHandler(repo domain.ListingRepository) *UserListingsHandler {
	return &UserListingsHandler{repo: repo}
}

// Handle executes the user listings query
func (h *UserListingsHandler) Handle(query UserListingsQuery) ([]domain.Listing, error) {
	if query.CreatorID == 0 {
		return nil, fmt.Errorf("invalid creator id")
	}

	listings, err := h.repo.FindByCreator(query.CreatorID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user listings: %w", err)
	}

	return listings, nil
}
