// Package dto defines data transfer objects for the meals HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"diet_backend/internal/api"
	"diet_backend/internal/feature/meals/domain/entity"
	"diet_backend/internal/feature/meals/usecase"
)

// CreateMealReq is the body of POST /meals.
// Fields are pointers so empty strings pass while missing keys fail.
type CreateMealReq struct {
	Name        *string `json:"name" binding:"required"`
	Description *string `json:"description" binding:"required"`
	DateTime    *string `json:"dateTime" binding:"required"`
	InOrOut     *string `json:"inOrOut" binding:"required"`
}

// ToInput converts the request to the usecase input.
func (r CreateMealReq) ToInput() usecase.CreateMealInput {
	return usecase.CreateMealInput{
		Name:        *r.Name,
		Description: *r.Description,
		DateTime:    *r.DateTime,
		InOrOut:     *r.InOrOut,
	}
}

// UpdateMealReq is the body of PATCH /meals/:id. Every field is optional.
type UpdateMealReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DateTime    *string `json:"dateTime"`
	InOrOut     *string `json:"inOrOut"`
}

// UnmarshalJSON rejects explicit nulls. A field is either omitted or a string.
func (r *UpdateMealReq) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, key := range []string{"name", "description", "dateTime", "inOrOut"} {
		if v, ok := raw[key]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return api.FieldError{Field: key, Reason: "must be a string"}
		}
	}

	type plain UpdateMealReq
	return json.Unmarshal(b, (*plain)(r))
}

// ToInput converts the request to the usecase input.
func (r UpdateMealReq) ToInput() usecase.UpdateMealInput {
	return usecase.UpdateMealInput{
		Name:        r.Name,
		Description: r.Description,
		DateTime:    r.DateTime,
		InOrOut:     r.InOrOut,
	}
}

// MealIDParam binds the :id path segment.
type MealIDParam struct {
	ID string `uri:"id" binding:"required"`
}

// UUID parses the id in either letter case.
func (p MealIDParam) UUID() (uuid.UUID, error) {
	return api.ParseUUID("id", p.ID)
}

// MealItem is the public shape of a meal.
type MealItem struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateTime    string    `json:"dateTime"`
	InOrOut     string    `json:"inOrOut"`
	CreatedAt   time.Time `json:"created_at"`
}

// MealListRes is the body of GET /meals.
type MealListRes struct {
	Meals []MealItem `json:"meals"`
}

// MealRes is the body of GET /meals/:id. Meal is null when nothing matched.
type MealRes struct {
	Meal *MealItem `json:"meal"`
}

// SummaryRes is the body of GET /meals/summary.
type SummaryRes struct {
	TotalMeals   int `json:"totalMeals"`
	TotalInDiet  int `json:"totalInDiet"`
	TotalOutDiet int `json:"totalOutDiet"`
	BestSequence int `json:"bestSequence"`
}

// FromEntity converts a domain meal to its response shape.
func FromEntity(m *entity.Meal) MealItem {
	return MealItem{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		DateTime:    m.DateTime,
		InOrOut:     m.InOrOut,
		CreatedAt:   m.CreatedAt,
	}
}

// FromSummary converts a domain summary to its response shape.
func FromSummary(s entity.Summary) SummaryRes {
	return SummaryRes{
		TotalMeals:   s.TotalMeals,
		TotalInDiet:  s.TotalInDiet,
		TotalOutDiet: s.TotalOutDiet,
		BestSequence: s.BestSequence,
	}
}
