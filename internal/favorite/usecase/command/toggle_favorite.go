package command

import (
	"context"

	"github.com/troyan365/marketplace/internal/favorite/domain"
	"github.com/troyan365/marketplace/pkg/logger"
)

// ToggleFavoriteCommand flips a listing's membership in the user's favorites
type ToggleFavoriteCommand struct {
	UserID    uint
	ListingID string
}

// ToggleFavoriteHandler handles favorite toggles for signed-in users
type ToggleFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(repo domain.FavoriteRepository) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{repo: repo}
}

// Handle toggles the favorite and reports the resulting membership
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (bool, error) {
	refs, err := h.repo.ListByUser(ctx, cmd.UserID)
	if err != nil {
		return false, err
	}

	if _, ok := domain.RefSet(refs)[cmd.ListingID]; ok {
		if err := h.repo.Remove(ctx, cmd.UserID, cmd.ListingID); err != nil {
			return true, err
		}
		logger.Info(ctx).
			Uint("user_id", cmd.UserID).
			Str("listing_id", cmd.ListingID).
			Msg("Favorite removed")
		return false, nil
	}

	if err := h.repo.Add(ctx, cmd.UserID, cmd.ListingID); err != nil {
		// A concurrent toggle won the race; the listing is favorited.
		if domain.IsConstraint(err) {
			return true, nil
		}
		return false, err
	}
	logger.Info(ctx).
		Uint("user_id", cmd.UserID).
		Str("listing_id", cmd.ListingID).
		Msg("Favorite added")
	return true, nil
}
