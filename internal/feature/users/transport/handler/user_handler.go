// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diet_backend/internal/api"
	"diet_backend/internal/feature/users/domain/entity"
	"diet_backend/internal/feature/users/transport/http/dto"
	"diet_backend/internal/feature/users/usecase"
	"diet_backend/internal/platform/session"
)

// UserUsecase defines the user operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Signup(ctx context.Context, name, email, sessionID string) (string, error)
}

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	uc           UserUsecase
	cookieSecure bool
}

// NewUserHandler creates a UserHandler. cookieSecure controls the Secure
// attribute of the issued sessionId cookie.
func NewUserHandler(uc UserUsecase, cookieSecure bool) *UserHandler {
	return &UserHandler{uc: uc, cookieSecure: cookieSecure}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	out := make([]dto.UserItem, 0, len(users))
	for i := range users {
		out = append(out, dto.FromEntity(&users[i]))
	}
	c.JSON(http.StatusOK, dto.UserListRes{Users: out})
}

// Get handles GET /users/:id.
// A well-formed id that matches nothing yields 200 with a null user.
func (h *UserHandler) Get(c *gin.Context) {
	var p dto.UserIDParam
	err := c.ShouldBindUri(&p)
	var id uuid.UUID
	if err == nil {
		id, err = p.UUID()
	}
	if err != nil {
		slog.Warn("get user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	user, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusOK, dto.UserRes{User: nil})
			return
		}
		slog.Error("get user failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	item := dto.FromEntity(user)
	c.JSON(http.StatusOK, dto.UserRes{User: &item})
}

// Create handles POST /users.
// - binds and validates the body (400 on failure)
// - reuses the caller's sessionId cookie, or issues a new one
// - responds 201 with an empty body
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	existing, _ := c.Cookie(session.CookieName)

	token, err := h.uc.Signup(c.Request.Context(), *req.Name, string(req.Email), existing)
	if err != nil {
		slog.Error("create user failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	if existing == "" {
		session.SetCookie(c, token, h.cookieSecure)
	}
	slog.Info("user created", "reused_session", existing != "", "remote_addr", c.ClientIP())
	c.Status(http.StatusCreated)
}
