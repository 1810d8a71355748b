package ports

import (
	"context"

	"github.com/platebook/recipe-api/internal/core/domain"
)

// IngredientInput is a single ingredient line submitted by the client.
type IngredientInput struct {
	Name     string
	Quantity float64
	Unit     string
}

// RecipeInput carries all data needed to create or replace a recipe.
type RecipeInput struct {
	Title        string
	Description  string
	Ingredients  []IngredientInput
	Instructions []string
	PrepTimeMin  int
	CookTimeMin  int
	Servings     int
	Difficulty   string
	Tags         []string
}

// Actor identifies who performs a mutation, for the audit trail.
type Actor struct {
	ID   string
	Role string
}

// ListRecipesInput carries all parameters for the list endpoint.
type ListRecipesInput struct {
	Difficulty string
	Tag        string
	Page       int
	Limit      int
}

// ListRecipesResult is returned by ListRecipes.
type ListRecipesResult struct {
	Items      []*domain.Recipe
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RecipeService defines use-case operations for recipes.
type RecipeService interface {
	CreateRecipe(ctx context.Context, input RecipeInput, actor Actor) (*domain.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, input ListRecipesInput) (*ListRecipesResult, error)
	UpdateRecipe(ctx context.Context, id string, input RecipeInput, actor Actor) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id string, actor Actor) error
}
