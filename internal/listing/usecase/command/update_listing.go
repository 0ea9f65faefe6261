package command

import (
	"fmt"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// UpdateListingCommand represents the command to update an owned listing
type UpdateListingCommand struct {
	ListingID   string
	CallerID    uint
	Title       string
	Description string
	PhoneNumber string
}

// UpdateListingHandler handles listing updates
type UpdateListingHandler struct {
	repo domain.ListingRepository
}

// NewUpdateListingHandler creates a new update listing handler
func NewUpdateListingHandler(repo domain.ListingRepository) *UpdateListingHandler {
	return &UpdateListingHandler{repo: repo}
}

// Handle executes the update listing command. Only the creator may update.
func (h *UpdateListingHandler) Handle(cmd UpdateListingCommand) (*domain.Listing, error) {
	if cmd.ListingID == "" {
		return nil, fmt.Errorf("listing id is required")
	}

	listing, err := h.repo.FindByListingID(cmd.ListingID)
	if err != nil {
		return nil, fmt.Errorf("listing not found: %w", err)
	}

	if listing.CreatorID != cmd.CallerID {
		return nil, fmt.Errorf("not the owner of this listing")
	}

	if cmd.Title != "" {
		listing.Title = cmd.Title
	}
	if cmd.Description != "" {
		listing.Description = cmd.Description
	}
	if cmd.PhoneNumber != "" {
		listing.PhoneNumber = cmd.PhoneNumber
	}

	if err := h.repo.Update(listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	return listing, nil
}
