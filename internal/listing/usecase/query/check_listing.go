package query

import (
	"fmt"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// CheckListingQuery asks whether a listing identifier denotes a live record
type CheckListingQuery struct {
	ListingID string
}

// CheckListingHandler handles existence checks. A deleted or never-created
// listing yields false, not an error; errors mean the check itself failed.
type CheckListingHandler struct {
	repo domain.ListingRepository
}

// NewCheckListingHandler creates a new check listing handler
func NewCheckListingHandler(repo domain.ListingRepository) *CheckListingHandler {
	return &CheckListingHandler{repo: repo}
}

// Handle executes the existence check
func (h *CheckListingHandler) Handle(query CheckListingQuery) (bool, error) {
	if query.ListingID == "" {
		return false, fmt.Errorf("listing id is required")
	}

	exists, err := h.repo.Exists(query.ListingID)
	if err != nil {
		return false, fmt.Errorf("failed to check listing: %w", err)
	}

	return exists, nil
}
