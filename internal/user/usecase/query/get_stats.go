package query

import (
	"fmt"

	"github.com/troyan365/marketplace/internal/user/domain"
)

// GetStatsQuery represents the query to get user statistics
type GetStatsQuery struct{}

// UserStats holds aggregate user counts
type UserStats struct {
	TotalUsers int64 `json:"total_users"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*UserStats, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &UserStats{TotalUsers: total}, nil
}
