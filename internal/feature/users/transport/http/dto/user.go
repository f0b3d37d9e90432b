// Package dto defines data transfer objects for the users HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"diet_backend/internal/api"
	"diet_backend/internal/feature/users/domain/entity"
)

// CreateUserReq is the body of POST /users.
// Name is a pointer so an empty string is accepted while a missing key is not.
type CreateUserReq struct {
	Name  *string             `json:"name" binding:"required"`
	Email openapi_types.Email `json:"email" binding:"required,email"`
}

// UserIDParam binds the :id path segment.
type UserIDParam struct {
	ID string `uri:"id" binding:"required"`
}

// UUID parses the id in either letter case.
func (p UserIDParam) UUID() (uuid.UUID, error) {
	return api.ParseUUID("id", p.ID)
}

// UserItem is the public shape of a user. The session token is never exposed.
type UserItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListRes is the body of GET /users.
type UserListRes struct {
	Users []UserItem `json:"users"`
}

// UserRes is the body of GET /users/:id. User is null when nothing matched.
type UserRes struct {
	User *UserItem `json:"user"`
}

// FromEntity converts a domain user to its response shape.
func FromEntity(u *entity.User) UserItem {
	return UserItem{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
