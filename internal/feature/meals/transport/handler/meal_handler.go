// Package handler provides the HTTP handlers for the meals feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diet_backend/internal/api"
	"diet_backend/internal/feature/meals/domain/entity"
	"diet_backend/internal/feature/meals/transport/http/dto"
	"diet_backend/internal/feature/meals/usecase"
	"diet_backend/internal/platform/session"
)

// MealUsecase defines the meal operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MealUsecase interface {
	ListMeals(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error)
	GetMeal(ctx context.Context, id uuid.UUID) (*entity.Meal, error)
	CreateMeal(ctx context.Context, userID uuid.UUID, in usecase.CreateMealInput) (*entity.Meal, error)
	UpdateMeal(ctx context.Context, id uuid.UUID, in usecase.UpdateMealInput) error
	DeleteMeal(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID) (entity.Summary, error)
}

// notFound is the 404 body for meal lookups by id.
var notFound = api.MessageResponse{Message: "Meal not found"}

// MealHandler handles HTTP requests for meals. Every route sits behind
// session.Required.
type MealHandler struct {
	uc MealUsecase
}

// NewMealHandler creates a MealHandler.
func NewMealHandler(uc MealUsecase) *MealHandler {
	return &MealHandler{uc: uc}
}

// List handles GET /meals.
func (h *MealHandler) List(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	meals, err := h.uc.ListMeals(c.Request.Context(), user)
	if err != nil {
		slog.Error("list meals failed", "error", err, "user_id", user)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	out := make([]dto.MealItem, 0, len(meals))
	for i := range meals {
		out = append(out, dto.FromEntity(&meals[i]))
	}
	c.JSON(http.StatusOK, dto.MealListRes{Meals: out})
}

// Get handles GET /meals/:id. The meal is returned whoever owns it.
func (h *MealHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	meal, err := h.uc.GetMeal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrMealNotFound) {
			c.JSON(http.StatusOK, dto.MealRes{Meal: nil})
			return
		}
		slog.Error("get meal failed", "error", err, "meal_id", id)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	item := dto.FromEntity(meal)
	c.JSON(http.StatusOK, dto.MealRes{Meal: &item})
}

// Create handles POST /meals.
func (h *MealHandler) Create(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateMealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create meal validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	meal, err := h.uc.CreateMeal(c.Request.Context(), user, req.ToInput())
	if err != nil {
		if errors.Is(err, usecase.ErrOwnerNotFound) {
			c.JSON(http.StatusUnauthorized, api.Unauthorized)
			return
		}
		slog.Error("create meal failed", "error", err, "user_id", user)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	slog.Info("meal created", "meal_id", meal.ID, "user_id", user)
	c.Status(http.StatusCreated)
}

// Update handles PATCH /meals/:id.
// - validates the id and the optional fields (400)
// - 404 if the meal does not exist
// - 204 on success; ownership is not checked
func (h *MealHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateMealReq
	// an empty body is an empty patch
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("update meal validation failed", "error", err, "meal_id", id)
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	if err := h.uc.UpdateMeal(c.Request.Context(), id, req.ToInput()); err != nil {
		if errors.Is(err, usecase.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
		slog.Error("update meal failed", "error", err, "meal_id", id)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /meals/:id. Ownership is not checked.
func (h *MealHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteMeal(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
		slog.Error("delete meal failed", "error", err, "meal_id", id)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	c.Status(http.StatusNoContent)
}

// Summary handles GET /meals/summary.
func (h *MealHandler) Summary(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	s, err := h.uc.Summary(c.Request.Context(), user)
	if err != nil {
		slog.Error("meal summary failed", "error", err, "user_id", user)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}
	c.JSON(http.StatusOK, dto.FromSummary(s))
}

// currentUser returns the authenticated user's ID or writes a 401.
func (h *MealHandler) currentUser(c *gin.Context) (uuid.UUID, bool) {
	u, ok := session.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.Unauthorized)
		return uuid.Nil, false
	}
	return u.ID, true
}

// bindID validates the :id path segment or writes a 400.
func bindID(c *gin.Context) (uuid.UUID, bool) {
	var p dto.MealIDParam
	err := c.ShouldBindUri(&p)
	var id uuid.UUID
	if err == nil {
		id, err = p.UUID()
	}
	if err != nil {
		slog.Warn("meal id validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return uuid.Nil, false
	}
	return id, true
}
