package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diet_backend/internal/feature/meals/domain/entity"
	"diet_backend/internal/feature/meals/usecase"
	userentity "diet_backend/internal/feature/users/domain/entity"
	"diet_backend/internal/platform/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockMealUsecase is a mock implementation of MealUsecase.
type mockMealUsecase struct {
	ListMealsFunc  func(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error)
	GetMealFunc    func(ctx context.Context, id uuid.UUID) (*entity.Meal, error)
	CreateMealFunc func(ctx context.Context, userID uuid.UUID, in usecase.CreateMealInput) (*entity.Meal, error)
	UpdateMealFunc func(ctx context.Context, id uuid.UUID, in usecase.UpdateMealInput) error
	DeleteMealFunc func(ctx context.Context, id uuid.UUID) error
	SummaryFunc    func(ctx context.Context, userID uuid.UUID) (entity.Summary, error)
}

func (m *mockMealUsecase) ListMeals(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error) {
	if m.ListMealsFunc != nil {
		return m.ListMealsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMealUsecase) GetMeal(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
	if m.GetMealFunc != nil {
		return m.GetMealFunc(ctx, id)
	}
	return nil, usecase.ErrMealNotFound
}

func (m *mockMealUsecase) CreateMeal(ctx context.Context, userID uuid.UUID, in usecase.CreateMealInput) (*entity.Meal, error) {
	if m.CreateMealFunc != nil {
		return m.CreateMealFunc(ctx, userID, in)
	}
	return &entity.Meal{ID: uuid.New(), UserID: userID}, nil
}

func (m *mockMealUsecase) UpdateMeal(ctx context.Context, id uuid.UUID, in usecase.UpdateMealInput) error {
	if m.UpdateMealFunc != nil {
		return m.UpdateMealFunc(ctx, id, in)
	}
	return nil
}

func (m *mockMealUsecase) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	if m.DeleteMealFunc != nil {
		return m.DeleteMealFunc(ctx, id)
	}
	return nil
}

func (m *mockMealUsecase) Summary(ctx context.Context, userID uuid.UUID) (entity.Summary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, userID)
	}
	return entity.Summary{}, nil
}

var (
	currentUserID = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	mealID        = uuid.MustParse("22222222-2222-4222-8222-222222222222")
)

// newMealRouter mounts the handler behind a stub that plays the session guard.
func newMealRouter(uc MealUsecase, authenticated bool) *gin.Engine {
	h := NewMealHandler(uc)
	r := gin.New()
	g := r.Group("/meals", func(c *gin.Context) {
		if authenticated {
			c.Set(session.ContextUser, &userentity.User{ID: currentUserID})
		}
		c.Next()
	})
	g.GET("", h.List)
	g.GET("/summary", h.Summary)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func doRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMealHandler_List(t *testing.T) {
	created := time.Date(2025, 2, 2, 18, 21, 22, 0, time.UTC)

	t.Run("success: meals of the current user", func(t *testing.T) {
		var queried uuid.UUID
		uc := &mockMealUsecase{ListMealsFunc: func(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error) {
			queried = userID
			return []entity.Meal{{
				ID: mealID, UserID: userID, Name: "Lunch", Description: "rice",
				DateTime: "2025-02-02T12:00", InOrOut: "in", CreatedAt: created,
			}}, nil
		}}

		w := doRequest(newMealRouter(uc, true), http.MethodGet, "/meals", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, currentUserID, queried)
		assert.JSONEq(t, `{"meals":[{
			"id":"22222222-2222-4222-8222-222222222222",
			"user_id":"11111111-1111-4111-8111-111111111111",
			"name":"Lunch","description":"rice","dateTime":"2025-02-02T12:00",
			"inOrOut":"in","created_at":"2025-02-02T18:21:22Z"}]}`, w.Body.String())
	})

	t.Run("success: no meals is an empty array", func(t *testing.T) {
		w := doRequest(newMealRouter(&mockMealUsecase{}, true), http.MethodGet, "/meals", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"meals":[]}`, w.Body.String())
	})

	t.Run("failure: no user in context", func(t *testing.T) {
		w := doRequest(newMealRouter(&mockMealUsecase{}, false), http.MethodGet, "/meals", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("failure: repository error", func(t *testing.T) {
		uc := &mockMealUsecase{ListMealsFunc: func(ctx context.Context, userID uuid.UUID) ([]entity.Meal, error) {
			return nil, errors.New("db down")
		}}

		w := doRequest(newMealRouter(uc, true), http.MethodGet, "/meals", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}

func TestMealHandler_Get(t *testing.T) {
	otherOwner := uuid.New()

	tests := []struct {
		name           string
		path           string
		getFunc        func(ctx context.Context, id uuid.UUID) (*entity.Meal, error)
		expectedStatus int
		check          func(t *testing.T, body map[string]any)
	}{
		{
			name: "success: meal of another user is visible",
			path: "/meals/" + mealID.String(),
			getFunc: func(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
				return &entity.Meal{ID: id, UserID: otherOwner, InOrOut: "out"}, nil
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				meal, ok := body["meal"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, otherOwner.String(), meal["user_id"])
			},
		},
		{
			name: "success: uppercase id is accepted",
			path: "/meals/" + strings.ToUpper(mealID.String()),
			getFunc: func(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
				if id != mealID {
					return nil, usecase.ErrMealNotFound
				}
				return &entity.Meal{ID: id, UserID: otherOwner}, nil
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				meal, ok := body["meal"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, mealID.String(), meal["id"])
			},
		},
		{
			name:           "success: unknown id yields null",
			path:           "/meals/" + mealID.String(),
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				v, ok := body["meal"]
				assert.True(t, ok)
				assert.Nil(t, v)
			},
		},
		{
			name:           "failure: malformed id",
			path:           "/meals/123",
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "invalid request", body["error"])
			},
		},
		{
			name: "failure: repository error",
			path: "/meals/" + mealID.String(),
			getFunc: func(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "internal server error", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(newMealRouter(&mockMealUsecase{GetMealFunc: tt.getFunc}, true), http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			tt.check(t, body)
		})
	}
}

func TestMealHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		createErr      error
		expectedStatus int
		expectCalled   bool
	}{
		{
			name:           "success",
			body:           `{"name":"Lunch","description":"rice","dateTime":"2025-02-02T12:00","inOrOut":"IN"}`,
			expectedStatus: http.StatusCreated,
			expectCalled:   true,
		},
		{
			name:           "success: empty strings are accepted",
			body:           `{"name":"","description":"","dateTime":"","inOrOut":""}`,
			expectedStatus: http.StatusCreated,
			expectCalled:   true,
		},
		{
			name:           "failure: missing inOrOut",
			body:           `{"name":"Lunch","description":"rice","dateTime":"2025-02-02T12:00"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: wrong type",
			body:           `{"name":1,"description":"rice","dateTime":"x","inOrOut":"in"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: owner vanished",
			body:           `{"name":"a","description":"b","dateTime":"c","inOrOut":"in"}`,
			createErr:      usecase.ErrOwnerNotFound,
			expectedStatus: http.StatusUnauthorized,
			expectCalled:   true,
		},
		{
			name:           "failure: repository error",
			body:           `{"name":"a","description":"b","dateTime":"c","inOrOut":"in"}`,
			createErr:      errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
			expectCalled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			uc := &mockMealUsecase{CreateMealFunc: func(ctx context.Context, userID uuid.UUID, in usecase.CreateMealInput) (*entity.Meal, error) {
				called = true
				assert.Equal(t, currentUserID, userID)
				if tt.createErr != nil {
					return nil, tt.createErr
				}
				return &entity.Meal{ID: mealID, UserID: userID}, nil
			}}

			w := doRequest(newMealRouter(uc, true), http.MethodPost, "/meals", bytes.NewBufferString(tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectCalled, called)
			if tt.expectedStatus == http.StatusCreated {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestMealHandler_Create_PassesFields(t *testing.T) {
	var got usecase.CreateMealInput
	uc := &mockMealUsecase{CreateMealFunc: func(ctx context.Context, userID uuid.UUID, in usecase.CreateMealInput) (*entity.Meal, error) {
		got = in
		return &entity.Meal{ID: mealID}, nil
	}}

	body := `{"name":"Lunch","description":"rice","dateTime":"2025-02-02T12:00","inOrOut":"In"}`
	w := doRequest(newMealRouter(uc, true), http.MethodPost, "/meals", bytes.NewBufferString(body))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, usecase.CreateMealInput{
		Name: "Lunch", Description: "rice", DateTime: "2025-02-02T12:00", InOrOut: "In",
	}, got)
}

func TestMealHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           io.Reader
		updateErr      error
		expectedStatus int
		expectedBody   string
		checkInput     func(t *testing.T, in usecase.UpdateMealInput)
	}{
		{
			name:           "success: partial patch",
			path:           "/meals/" + mealID.String(),
			body:           bytes.NewBufferString(`{"name":"Dinner"}`),
			expectedStatus: http.StatusNoContent,
			checkInput: func(t *testing.T, in usecase.UpdateMealInput) {
				require.NotNil(t, in.Name)
				assert.Equal(t, "Dinner", *in.Name)
				assert.Nil(t, in.Description)
				assert.Nil(t, in.DateTime)
				assert.Nil(t, in.InOrOut)
			},
		},
		{
			name:           "success: empty object",
			path:           "/meals/" + mealID.String(),
			body:           bytes.NewBufferString(`{}`),
			expectedStatus: http.StatusNoContent,
			checkInput: func(t *testing.T, in usecase.UpdateMealInput) {
				assert.Equal(t, usecase.UpdateMealInput{}, in)
			},
		},
		{
			name:           "success: no body",
			path:           "/meals/" + mealID.String(),
			body:           nil,
			expectedStatus: http.StatusNoContent,
			checkInput: func(t *testing.T, in usecase.UpdateMealInput) {
				assert.Equal(t, usecase.UpdateMealInput{}, in)
			},
		},
		{
			name:           "success: uppercase id",
			path:           "/meals/" + strings.ToUpper(mealID.String()),
			body:           bytes.NewBufferString(`{"name":"Dinner"}`),
			expectedStatus: http.StatusNoContent,
			checkInput: func(t *testing.T, in usecase.UpdateMealInput) {
				require.NotNil(t, in.Name)
				assert.Equal(t, "Dinner", *in.Name)
			},
		},
		{
			name:           "failure: explicit null",
			path:           "/meals/" + mealID.String(),
			body:           bytes.NewBufferString(`{"name":"Dinner","inOrOut":null}`),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request","details":[{"field":"inOrOut","reason":"must be a string"}]}`,
		},
		{
			name:           "failure: body is not an object",
			path:           "/meals/" + mealID.String(),
			body:           bytes.NewBufferString(`["name"]`),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: meal not found",
			path:           "/meals/" + mealID.String(),
			body:           bytes.NewBufferString(`{"name":"Dinner"}`),
			updateErr:      usecase.ErrMealNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Meal not found"}`,
		},
		{
			name:           "failure: malformed id",
			path:           "/meals/nope",
			body:           bytes.NewBufferString(`{"name":"Dinner"}`),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: wrong type",
			path:           "/meals/" + mealID.String(),
			body:           bytes.NewBufferString(`{"inOrOut":true}`),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: repository error",
			path:           "/meals/" + mealID.String(),
			body:           bytes.NewBufferString(`{"name":"Dinner"}`),
			updateErr:      errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *usecase.UpdateMealInput
			uc := &mockMealUsecase{UpdateMealFunc: func(ctx context.Context, id uuid.UUID, in usecase.UpdateMealInput) error {
				assert.Equal(t, mealID, id)
				got = &in
				return tt.updateErr
			}}

			w := doRequest(newMealRouter(uc, true), http.MethodPatch, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusBadRequest {
				assert.Nil(t, got, "usecase must not run for invalid input")
			}
			if tt.checkInput != nil {
				require.NotNil(t, got)
				tt.checkInput(t, *got)
			}
		})
	}
}

func TestMealHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		deleteErr      error
		expectedStatus int
		expectedBody   string
	}{
		{"success", "/meals/" + mealID.String(), nil, http.StatusNoContent, ""},
		{"success: uppercase id", "/meals/" + strings.ToUpper(mealID.String()), nil, http.StatusNoContent, ""},
		{"failure: not found", "/meals/" + mealID.String(), usecase.ErrMealNotFound, http.StatusNotFound, `{"message":"Meal not found"}`},
		{"failure: malformed id", "/meals/x", nil, http.StatusBadRequest, ""},
		{"failure: repository error", "/meals/" + mealID.String(), errors.New("db down"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockMealUsecase{DeleteMealFunc: func(ctx context.Context, id uuid.UUID) error {
				assert.Equal(t, mealID, id)
				return tt.deleteErr
			}}

			w := doRequest(newMealRouter(uc, true), http.MethodDelete, tt.path, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusNoContent {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestMealHandler_Summary(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockMealUsecase{SummaryFunc: func(ctx context.Context, userID uuid.UUID) (entity.Summary, error) {
			assert.Equal(t, currentUserID, userID)
			return entity.Summary{TotalMeals: 7, TotalInDiet: 5, TotalOutDiet: 2, BestSequence: 3}, nil
		}}

		w := doRequest(newMealRouter(uc, true), http.MethodGet, "/meals/summary", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"totalMeals":7,"totalInDiet":5,"totalOutDiet":2,"bestSequence":3}`, w.Body.String())
	})

	t.Run("success: zero meals", func(t *testing.T) {
		w := doRequest(newMealRouter(&mockMealUsecase{}, true), http.MethodGet, "/meals/summary", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"totalMeals":0,"totalInDiet":0,"totalOutDiet":0,"bestSequence":0}`, w.Body.String())
	})

	t.Run("failure: repository error", func(t *testing.T) {
		uc := &mockMealUsecase{SummaryFunc: func(ctx context.Context, userID uuid.UUID) (entity.Summary, error) {
			return entity.Summary{}, errors.New("db down")
		}}

		w := doRequest(newMealRouter(uc, true), http.MethodGet, "/meals/summary", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
