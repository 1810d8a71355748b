package handler

import (
	"github.com/platebook/recipe-api/internal/core/domain"
	"github.com/platebook/recipe-api/internal/core/ports"
)

// --- Request → Service input ---

func toRecipeInput(req recipeRequest) ports.RecipeInput {
	ingredients := make([]ports.IngredientInput, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		ingredients[i] = ports.IngredientInput{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}
	return ports.RecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  ingredients,
		Instructions: req.Instructions,
		PrepTimeMin:  req.PrepTimeMin,
		CookTimeMin:  req.CookTimeMin,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Tags:         req.Tags,
	}
}

// --- Domain → HTTP response ---

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	ingredients := make([]ingredientResponse, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = ingredientResponse{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}
	return recipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		PrepTimeMin:  r.PrepTimeMin,
		CookTimeMin:  r.CookTimeMin,
		Servings:     r.Servings,
		Difficulty:   string(r.Difficulty),
		Tags:         r.Tags,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func toListResponse(res *ports.ListRecipesResult) listRecipesResponse {
	items := make([]recipeResponse, len(res.Items))
	for i, r := range res.Items {
		items[i] = toRecipeResponse(r)
	}
	return listRecipesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      res.Total,
			Page:       res.Page,
			Limit:      res.Limit,
			TotalPages: res.TotalPages,
		},
	}
}
