package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"diet_backend/internal/feature/users/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *entity.User) error

	// List returns every user.
	List(ctx context.Context) ([]entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindBySessionID returns the earliest-created user holding the token,
	// or ErrUserNotFound.
	FindBySessionID(ctx context.Context, sessionID string) (*entity.User, error)
}

// userUsecase implements the user endpoints' business rules.
type userUsecase struct {
	users UserRepository
	newID func() uuid.UUID
}

// NewUserUsecase creates a userUsecase backed by the given repository.
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{
		users: users,
		newID: uuid.New,
	}
}

// ListUsers returns all users without filtering.
func (u *userUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// GetUser returns the user with the given ID, or ErrUserNotFound.
func (u *userUsecase) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Signup creates a user bound to a session token and returns that token.
// When sessionID is empty a new token is minted; otherwise the caller's
// existing token is reused, so one browser session may own several users.
func (u *userUsecase) Signup(ctx context.Context, name, email, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = u.newID().String()
	}

	user := &entity.User{
		ID:        u.newID(),
		SessionID: &sessionID,
		Name:      name,
		Email:     email,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return sessionID, nil
}
