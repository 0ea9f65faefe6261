package command

import (
	"fmt"
	"time"

	"github.com/troyan365/marketplace/internal/user/domain"
)

// UpdateAvatarCommand represents the command to set a user's avatar URL
type UpdateAvatarCommand struct {
	UserID    uint
	AvatarURL string
}

// UpdateAvatarHandler handles avatar updates
type UpdateAvatarHandler struct {
	repo domain.UserRepository
}

// NewUpdateAvatarHandler creates a new update avatar handler
func NewUpdateAvatarHandler(repo domain.UserRepository) *UpdateAvatarHandler {
	return &UpdateAvatarHandler{repo: repo}
}

// Handle executes the update avatar command
func (h *UpdateAvatarHandler) Handle(cmd UpdateAvatarCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if cmd.AvatarURL == "" {
		return nil, fmt.Errorf("avatar url is required")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	user.AvatarURL = cmd.AvatarURL
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return user, nil
}
