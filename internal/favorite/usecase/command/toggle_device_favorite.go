package command

import (
	"context"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

// ToggleDeviceFavoriteCommand flips a listing's membership in a device's
// anonymous favorite set
type ToggleDeviceFavoriteCommand struct {
	DeviceID  string
	ListingID string
}

// ToggleDeviceFavoriteHandler handles favorite toggles for anonymous devices
type ToggleDeviceFavoriteHandler struct {
	store domain.DeviceFavoriteStore
}

// NewToggleDeviceFavoriteHandler creates a new device toggle handler
func NewToggleDeviceFavoriteHandler(store domain.DeviceFavoriteStore) *ToggleDeviceFavoriteHandler {
	return &ToggleDeviceFavoriteHandler{store: store}
}

// Handle toggles the favorite and returns the device's new set
func (h *ToggleDeviceFavoriteHandler) Handle(ctx context.Context, cmd ToggleDeviceFavoriteCommand) ([]domain.FavoriteRef, error) {
	return h.store.Toggle(ctx, cmd.DeviceID, cmd.ListingID)
}
