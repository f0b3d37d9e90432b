package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"diet_backend/internal/feature/meals/domain/entity"
	"diet_backend/internal/feature/meals/usecase"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

// mealGorm is a GORM implementation of the MealRepository interface.
type mealGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure mealGorm implements MealRepository.
var _ usecase.MealRepository = (*mealGorm)(nil)

// NewMealGorm creates a new instance of mealGorm.
func NewMealGorm(db *gorm.DB) *mealGorm {
	return &mealGorm{db: db}
}

// Create inserts the meal and copies the server-assigned CreatedAt back.
func (r *mealGorm) Create(ctx context.Context, m *entity.Meal) error {
	if m == nil {
		return errors.New("meal is nil")
	}
	model := MealModelFromEntity(m)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	m.CreatedAt = model.CreatedAt
	return nil
}

// ListByUser returns a user's meals in creation order.
func (r *mealGorm) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error) {
	var models []MealModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	meals := make([]entity.Meal, 0, len(models))
	for i := range models {
		meals = append(meals, *models[i].ToEntity())
	}
	return meals, nil
}

// FindByID retrieves a meal by primary key.
func (r *mealGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
	var model MealModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMealNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Update writes the four mutable columns. A map is used so empty strings are
// written rather than skipped as zero values.
func (r *mealGorm) Update(ctx context.Context, m *entity.Meal) error {
	if m == nil {
		return errors.New("meal is nil")
	}
	res := r.db.WithContext(ctx).
		Model(&MealModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"name":        m.Name,
			"description": m.Description,
			"date_time":   m.DateTime,
			"in_or_out":   m.InOrOut,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrMealNotFound
	}
	return nil
}

// Delete removes a meal by primary key.
func (r *mealGorm) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MealModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrMealNotFound
	}
	return nil
}

// translateError maps driver errors onto usecase sentinels.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return usecase.ErrOwnerNotFound
	}
	return err
}
