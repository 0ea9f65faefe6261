package command

import (
	"fmt"
	"io"

	"github.com/troyan365/marketplace/internal/listing/domain"
	"github.com/troyan365/marketplace/internal/listing/storage"
)

// AttachPhotoCommand represents the command to upload a listing photo
type AttachPhotoCommand struct {
	ListingID string
	CallerID  uint
	FileName  string
	Body      io.Reader
}

// AttachPhotoHandler handles photo uploads for a listing
type AttachPhotoHandler struct {
	repo  domain.ListingRepository
	blobs storage.BlobStore
}

// NewAttachPhotoHandler creates a new attach photo handler
func NewAttachPhotoHandler(repo domain.ListingRepository, blobs storage.BlobStore) *AttachPhotoHandler {
	return &AttachPhotoHandler{repo: repo, blobs: blobs}
}

// Handle uploads the photo and records its path as the listing thumbnail
func (h *AttachPhotoHandler) Handle(cmd AttachPhotoCommand) (*domain.Listing, error) {
	if cmd.ListingID == "" {
		return nil, fmt.Errorf("listing id is required")
	}
	if cmd.FileName == "" || cmd.Body == nil {
		return nil, fmt.Errorf("photo file is required")
	}

	listing, err := h.repo.FindByListingID(cmd.ListingID)
	if err != nil {
		return nil, fmt.Errorf("listing not found: %w", err)
	}

	if listing.CreatorID != cmd.CallerID {
		return nil, fmt.Errorf("not the owner of this listing")
	}

	path := storage.PhotoPath(cmd.CallerID, cmd.ListingID, cmd.FileName)
	stored, err := h.blobs.Save(path, cmd.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	// Replacing a photo leaves the old blob for async cleanup
	listing.ThumbnailURL = stored

	if err := h.repo.Update(listing); err != nil {
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	return listing, nil
}
