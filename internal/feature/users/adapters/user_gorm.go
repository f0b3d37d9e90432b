// Package adapters provides repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diet_backend/internal/feature/users/domain/entity"
	"diet_backend/internal/feature/users/usecase"
)

// userGorm is a GORM implementation of the UserRepository interface.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user and copies the server-assigned CreatedAt back.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	model := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	u.CreatedAt = model.CreatedAt
	return nil
}

// List returns every user in creation order.
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]entity.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].ToEntity())
	}
	return users, nil
}

// FindByID retrieves a user by primary key.
func (r *userGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindBySessionID retrieves the user holding a session token.
// A token reused across signups maps to several rows; the earliest one wins.
func (r *userGorm) FindBySessionID(ctx context.Context, sessionID string) (*entity.User, error) {
	if sessionID == "" {
		return nil, usecase.ErrUserNotFound
	}

	var model UserModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}
