package command

import (
	"fmt"

	"github.com/troyan365/marketplace/internal/listing/domain"
	"github.com/troyan365/marketplace/internal/listing/storage"
)

// DeleteListingCommand represents the command to delete an owned listing
type DeleteListingCommand struct {
	ListingID string
	CallerID  uint
}

// DeleteListingHandler handles listing deletion
type DeleteListingHandler struct {
	repo  domain.ListingRepository
	blobs storage.BlobStore
}

// NewDeleteListingHandler creates a new delete listing handler.
// blobs may be nil when photo cleanup is disabled.
func NewDeleteListingHandler(repo domain.ListingRepository, blobs storage.BlobStore) *DeleteListingHandler {
	return &DeleteListingHandler{repo: repo, blobs: blobs}
}

// Handle executes the delete listing command. Only the creator may delete.
// Photo cleanup is best effort; a dangling blob is preferable to a failed
// delete.
func (h *DeleteListingHandler) Handle(cmd DeleteListingCommand) error {
	if cmd.ListingID == "" {
		return fmt.Errorf("listing id is required")
	}

	listing, err := h.repo.FindByListingID(cmd.ListingID)
	if err != nil {
		return fmt.Errorf("listing not found: %w", err)
	}

	if listing.CreatorID != cmd.CallerID {
		return fmt.Errorf("not the owner of this listing")
	}

	if err := h.repo.Delete(cmd.ListingID); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	if h.blobs != nil && listing.ThumbnailURL != "" {
		_ = h.blobs.Delete(listing.ThumbnailURL)
	}

	return nil
}
