package ports

import (
	"context"

	"github.com/platebook/recipe-api/internal/core/domain"
)

// ListRecipesFilter carries all query parameters for listing recipes.
type ListRecipesFilter struct {
	Difficulty string // optional: filter by difficulty
	Tag        string // optional: recipes carrying this tag
	Page       int    // 1-based
	Limit      int    // max rows per page (capped at 100 by the service)
}

// RecipeRepository defines persistence operations for recipes.
type RecipeRepository interface {
	Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, id string) (*domain.Recipe, error)
	// List returns a page of recipes matching filter and the total count.
	List(ctx context.Context, filter ListRecipesFilter) ([]*domain.Recipe, int64, error)
	Update(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	Delete(ctx context.Context, id string) error
}
