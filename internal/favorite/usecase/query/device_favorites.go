package query

import (
	"context"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

// DeviceFavoritesQuery fetches a device's anonymous favorite set
type DeviceFavoritesQuery struct {
	DeviceID string
}

// DeviceFavoritesHandler handles device favorite queries
type DeviceFavoritesHandler struct {
	store domain.DeviceFavoriteStore
}

// NewDeviceFavoritesHandler creates a new device favorites handler
func NewDeviceFavoritesHandler(store domain.DeviceFavoriteStore) *DeviceFavoritesHandler {
	return &DeviceFavoritesHandler{store: store}
}

// Handle returns the device's favorites, empty when there are none
func (h *DeviceFavoritesHandler) Handle(ctx context.Context, q DeviceFavoritesQuery) ([]domain.FavoriteRef, error) {
	return h.store.ReadAll(ctx, q.DeviceID)
}
