package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/platebook/recipe-api/internal/api/handler"
	"github.com/platebook/recipe-api/internal/api/middleware"
	"github.com/platebook/recipe-api/internal/core/domain"
	"github.com/platebook/recipe-api/internal/core/ports"
)

type stubRecipeService struct {
	createFn func(ctx context.Context, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error)
	getFn    func(ctx context.Context, id string) (*domain.Recipe, error)
	listFn   func(ctx context.Context, input ports.ListRecipesInput) (*ports.ListRecipesResult, error)
	updateFn func(ctx context.Context, id string, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error)
	deleteFn func(ctx context.Context, id string, actor ports.Actor) error
}

func (s *stubRecipeService) CreateRecipe(ctx context.Context, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
	return s.createFn(ctx, input, actor)
}

func (s *stubRecipeService) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return s.getFn(ctx, id)
}

func (s *stubRecipeService) ListRecipes(ctx context.Context, input ports.ListRecipesInput) (*ports.ListRecipesResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubRecipeService) UpdateRecipe(ctx context.Context, id string, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
	return s.updateFn(ctx, id, input, actor)
}

func (s *stubRecipeService) DeleteRecipe(ctx context.Context, id string, actor ports.Actor) error {
	return s.deleteFn(ctx, id, actor)
}

const validRecipeBody = `{
	"title": "Sourdough Bread",
	"description": "Classic loaf",
	"ingredients": [{"name": "flour", "quantity": 500, "unit": "g"}],
	"instructions": ["mix", "proof", "bake"],
	"prep_time_min": 30,
	"cook_time_min": 45,
	"servings": 8,
	"difficulty": "medium",
	"tags": ["bread"]
}`

func sampleRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:           "64b000000000000000000001",
		Title:        "Sourdough Bread",
		Description:  "Classic loaf",
		Ingredients:  []domain.Ingredient{{Name: "flour", Quantity: 500, Unit: "g"}},
		Instructions: []string{"mix", "proof", "bake"},
		PrepTimeMin:  30,
		CookTimeMin:  45,
		Servings:     8,
		Difficulty:   domain.DifficultyMedium,
		Tags:         []string{"bread"},
		CreatedBy:    "admin-1",
	}
}

// adminContext builds a request context as the Auth middleware would leave it.
func adminContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	c.Set(middleware.ContextKeyRole, domain.RoleAdmin)
	return c, rec
}

func TestRecipeHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		createFn: func(ctx context.Context, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
			if input.Title != "Sourdough Bread" || len(input.Ingredients) != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			if actor.ID != "admin-1" || actor.Role != domain.RoleAdmin {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			r := sampleRecipe()
			return r, nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	c, rec := adminContext(e, http.MethodPost, "/api/recipes", validRecipeBody)
	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "64b000000000000000000001" || resp["difficulty"] != "medium" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRecipeHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		createFn: func(ctx context.Context, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	cases := map[string]string{
		"missing title":  `{"description":"x","ingredients":[{"name":"a","quantity":1}],"instructions":["y"],"servings":2,"difficulty":"easy"}`,
		"no ingredients": `{"title":"abc","description":"x","ingredients":[],"instructions":["y"],"servings":2,"difficulty":"easy"}`,
		"bad difficulty": `{"title":"abc","description":"x","ingredients":[{"name":"a","quantity":1}],"instructions":["y"],"servings":2,"difficulty":"extreme"}`,
		"zero servings":  `{"title":"abc","description":"x","ingredients":[{"name":"a","quantity":1}],"instructions":["y"],"servings":0,"difficulty":"easy"}`,
		"malformed":      `{{{`,
	}
	for name, body := range cases {
		c, rec := adminContext(e, http.MethodPost, "/api/recipes", body)
		if err := h.Create(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestRecipeHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		getFn: func(ctx context.Context, id string) (*domain.Recipe, error) {
			if id != "64b000000000000000000001" {
				t.Fatalf("unexpected id: %s", id)
			}
			return sampleRecipe(), nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/64b000000000000000000001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("64b000000000000000000001")

	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecipeHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		getFn: func(ctx context.Context, id string) (*domain.Recipe, error) {
			return nil, domain.ErrRecipeNotFound
		},
	}
	h := handler.NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/64b000000000000000000002", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("64b000000000000000000002")

	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRecipeHandler_Get_InvalidID(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		getFn: func(ctx context.Context, id string) (*domain.Recipe, error) {
			return nil, domain.ErrInvalidRecipeID
		},
	}
	h := handler.NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/not-an-id", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-an-id")

	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecipeHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		listFn: func(ctx context.Context, input ports.ListRecipesInput) (*ports.ListRecipesResult, error) {
			if input.Page != 2 || input.Limit != 5 || input.Difficulty != "easy" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ListRecipesResult{
				Items:      []*domain.Recipe{sampleRecipe()},
				Total:      11,
				Page:       2,
				Limit:      5,
				TotalPages: 3,
			}, nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes?page=2&limit=5&difficulty=easy", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok || pagination["total"] != float64(11) || pagination["total_pages"] != float64(3) {
		t.Fatalf("unexpected pagination: %+v", resp["pagination"])
	}
}

func TestRecipeHandler_List_RejectsBadQuery(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		listFn: func(ctx context.Context, input ports.ListRecipesInput) (*ports.ListRecipesResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes?difficulty=extreme", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecipeHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		updateFn: func(ctx context.Context, id string, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
			r := sampleRecipe()
			r.Title = input.Title
			return r, nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	c, rec := adminContext(e, http.MethodPut, "/api/recipes/64b000000000000000000001", validRecipeBody)
	c.SetParamNames("id")
	c.SetParamValues("64b000000000000000000001")

	if err := h.Update(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRecipeHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubRecipeService{
		deleteFn: func(ctx context.Context, id string, actor ports.Actor) error {
			deleted = id
			return nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	c, rec := adminContext(e, http.MethodDelete, "/api/recipes/64b000000000000000000001", "")
	c.SetParamNames("id")
	c.SetParamValues("64b000000000000000000001")

	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "64b000000000000000000001" {
		t.Fatalf("unexpected deleted id: %s", deleted)
	}
}

// A mutating handler reached without the Auth middleware has no actor and
// must refuse rather than attribute the change to nobody.
func TestRecipeHandler_Create_MissingIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubRecipeService{
		createFn: func(ctx context.Context, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewRecipeHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(validRecipeBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
