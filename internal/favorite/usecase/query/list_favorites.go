package query

import (
	"context"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

// ListFavoritesQuery fetches a user's favorite set
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles user favorite queries
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle returns the user's favorites, empty when there are none
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) ([]domain.FavoriteRef, error) {
	refs, err := h.repo.ListByUser(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []domain.FavoriteRef{}
	}
	return refs, nil
}
