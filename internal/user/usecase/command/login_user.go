package command

import (
	"context"
	"fmt"

	"github.com/troyan365/marketplace/internal/user/domain"
	"github.com/troyan365/marketplace/kafka"
	"github.com/troyan365/marketplace/pkg/auth"
	"github.com/troyan365/marketplace/pkg/logger"
)

// SignInPublisher publishes the signed-in event that triggers favorites
// reconciliation downstream.
type SignInPublisher interface {
	PublishUserSignedIn(ctx context.Context, event kafka.UserSignedInEvent) error
}

// LoginUserCommand represents the command to login a user.
// DeviceID optionally names the anonymous device whose local favorites
// should be reconciled into this account.
type LoginUserCommand struct {
	Username string
	Password string
	DeviceID string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login
type LoginUserHandler struct {
	repo      domain.UserRepository
	publisher SignInPublisher
}

// NewLoginUserHandler creates a new login user handler. publisher may be nil
// when eventing is disabled.
func NewLoginUserHandler(repo domain.UserRepository, publisher SignInPublisher) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, publisher: publisher}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	// Validation
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	user, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Fire the sign-in event exactly once per successful login. Failure to
	// publish never fails the login itself.
	if h.publisher != nil {
		event := kafka.UserSignedInEvent{
			UserID:   user.ID,
			Username: user.Username,
			DeviceID: cmd.DeviceID,
		}
		if err := h.publisher.PublishUserSignedIn(ctx, event); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("user_id", user.ID).
				Msg("Failed to publish signed-in event")
		}
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}
