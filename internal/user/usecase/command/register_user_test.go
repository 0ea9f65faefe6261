package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troyan365/marketplace/internal/user/domain"
	"github.com/troyan365/marketplace/kafka"
	"github.com/troyan365/marketplace/pkg/auth"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	if _, ok := f.users[user.Username]; ok {
		return errors.New("duplicate username")
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *domain.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	for name, u := range f.users {
		if u.ID == id {
			delete(f.users, name)
			return nil
		}
	}
	return errors.New("user not found")
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) seed(username, password string) *domain.User {
	hashed, _ := auth.HashPassword(password)
	user := &domain.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: hashed,
		Role:     domain.RoleUser,
		IsActive: true,
	}
	f.Create(user)
	return user
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	user, err := h.Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
}

func TestRegisterUserValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing username", RegisterUserCommand{Email: "a@b.com", Password: "secret123"}},
		{"missing email", RegisterUserCommand{Username: "alice", Password: "secret123"}},
		{"invalid email", RegisterUserCommand{Username: "alice", Email: "nope", Password: "secret123"}},
		{"short password", RegisterUserCommand{Username: "alice", Email: "a@b.com", Password: "abc"}},
		{"invalid role", RegisterUserCommand{Username: "alice", Email: "a@b.com", Password: "secret123", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRegisterUserHandler(newFakeUserRepo())
			_, err := h.Handle(tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("alice", "secret123")
	h := NewRegisterUserHandler(repo)

	_, err := h.Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})

	assert.ErrorContains(t, err, "username already exists")
}

type recordingPublisher struct {
	events []kafka.UserSignedInEvent
	err    error
}

func (p *recordingPublisher) PublishUserSignedIn(ctx context.Context, event kafka.UserSignedInEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func TestLoginPublishesSignedInEvent(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := repo.seed("alice", "secret123")
	publisher := &recordingPublisher{}
	h := NewLoginUserHandler(repo, publisher)

	resp, err := h.Handle(context.Background(), LoginUserCommand{
		Username: "alice",
		Password: "secret123",
		DeviceID: "dev-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, seeded.ID, publisher.events[0].UserID)
	assert.Equal(t, "dev-1", publisher.events[0].DeviceID)
}

func TestLoginSucceedsWhenPublishFails(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("alice", "secret123")
	publisher := &recordingPublisher{err: errors.New("broker down")}
	h := NewLoginUserHandler(repo, publisher)

	resp, err := h.Handle(context.Background(), LoginUserCommand{
		Username: "alice",
		Password: "secret123",
	})

	require.NoError(t, err, "a publish failure must never fail the login")
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("alice", "secret123")
	h := NewLoginUserHandler(repo, nil)

	_, err := h.Handle(context.Background(), LoginUserCommand{
		Username: "alice",
		Password: "wrong",
	})

	assert.ErrorContains(t, err, "invalid credentials")
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.seed("alice", "secret123")
	user.IsActive = false
	h := NewLoginUserHandler(repo, nil)

	_, err := h.Handle(context.Background(), LoginUserCommand{
		Username: "alice",
		Password: "secret123",
	})

	assert.ErrorContains(t, err, "deactivated")
}
