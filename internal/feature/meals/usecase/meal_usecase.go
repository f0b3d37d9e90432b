package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"diet_backend/internal/feature/meals/domain/entity"
)

// MealRepository abstracts the persistence layer for meal entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MealRepository interface {
	// Create persists a new meal. Returns ErrOwnerNotFound when the owner does not exist.
	Create(ctx context.Context, meal *entity.Meal) error

	// ListByUser returns the meals owned by userID in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error)

	// FindByID returns ErrMealNotFound when no meal has the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Meal, error)

	// Update overwrites the mutable fields of an existing meal.
	Update(ctx context.Context, meal *entity.Meal) error

	// Delete removes a meal. Returns ErrMealNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateMealInput carries the fields of a new meal.
type CreateMealInput struct {
	Name        string
	Description string
	DateTime    string
	InOrOut     string
}

// UpdateMealInput is a partial update; nil fields keep their stored value.
type UpdateMealInput struct {
	Name        *string
	Description *string
	DateTime    *string
	InOrOut     *string
}

// mealUsecase implements the meal endpoints' business rules.
type mealUsecase struct {
	meals MealRepository
	newID func() uuid.UUID
}

// NewMealUsecase creates a mealUsecase backed by the given repository.
func NewMealUsecase(meals MealRepository) *mealUsecase {
	return &mealUsecase{
		meals: meals,
		newID: uuid.New,
	}
}

// ListMeals returns the meals owned by userID.
func (u *mealUsecase) ListMeals(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error) {
	return u.meals.ListByUser(ctx, userID)
}

// GetMeal looks a meal up by ID regardless of its owner.
func (u *mealUsecase) GetMeal(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
	return u.meals.FindByID(ctx, id)
}

// CreateMeal records a meal for userID.
func (u *mealUsecase) CreateMeal(ctx context.Context, userID uuid.UUID, in CreateMealInput) (*entity.Meal, error) {
	meal := &entity.Meal{
		ID:          u.newID(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		DateTime:    in.DateTime,
		InOrOut:     entity.NormalizeInOrOut(in.InOrOut),
	}
	if err := u.meals.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return meal, nil
}

// UpdateMeal applies a partial update to the meal with the given ID.
// The read and the write are not transactional; concurrent patches race.
func (u *mealUsecase) UpdateMeal(ctx context.Context, id uuid.UUID, in UpdateMealInput) error {
	meal, err := u.meals.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Name != nil {
		meal.Name = *in.Name
	}
	if in.Description != nil {
		meal.Description = *in.Description
	}
	if in.DateTime != nil {
		meal.DateTime = *in.DateTime
	}
	if in.InOrOut != nil {
		meal.InOrOut = entity.NormalizeInOrOut(*in.InOrOut)
	}

	if err := u.meals.Update(ctx, meal); err != nil {
		return fmt.Errorf("update meal %s: %w", id, err)
	}
	return nil
}

// DeleteMeal removes the meal with the given ID regardless of its owner.
func (u *mealUsecase) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	return u.meals.Delete(ctx, id)
}

// Summary computes the meal statistics of userID.
func (u *mealUsecase) Summary(ctx context.Context, userID uuid.UUID) (entity.Summary, error) {
	meals, err := u.meals.ListByUser(ctx, userID)
	if err != nil {
		return entity.Summary{}, fmt.Errorf("list meals for summary: %w", err)
	}
	return entity.Summarize(meals), nil
}
