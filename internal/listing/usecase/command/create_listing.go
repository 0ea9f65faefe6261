package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// CreateListingCommand represents the command to create a new listing
type CreateListingCommand struct {
	Title       string
	Description string
	PhoneNumber string
	CreatorID   uint
}

// CreateListingHandler handles listing creation
type CreateListingHandler struct {
	repo domain.ListingRepository
}

// NewCreateListingHandler creates a new create listing handler
func NewCreateListingHandler(repo domain.ListingRepository) *CreateListingHandler {
	return &CreateListingHandler{repo: repo}
}

// Handle executes the create listing command
func (h *CreateListingHandler) Handle(cmd CreateListingCommand) (*domain.Listing, error) {
	// Validation
	if cmd.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if cmd.PhoneNumber == "" {
		return nil, fmt.Errorf("phone number is required")
	}
	if cmd.CreatorID == 0 {
		return nil, fmt.Errorf("invalid creator id")
	}

	listing := &domain.Listing{
		ListingID:   uuid.NewString(),
		Title:       cmd.Title,
		Description: cmd.Description,
		PhoneNumber: cmd.PhoneNumber,
		CreatorID:   cmd.CreatorID,
	}

	if err := h.repo.Create(listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return listing, nil
}
