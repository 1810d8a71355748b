package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type ingredientRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit"`
}

type recipeRequest struct {
	Title        string              `json:"title"         validate:"required,min=3"`
	Description  string              `json:"description"   validate:"required"`
	Ingredients  []ingredientRequest `json:"ingredients"   validate:"required,min=1,dive"`
	Instructions []string            `json:"instructions"  validate:"required,min=1,dive,required"`
	PrepTimeMin  int                 `json:"prep_time_min" validate:"gte=0"`
	CookTimeMin  int                 `json:"cook_time_min" validate:"gte=0"`
	Servings     int                 `json:"servings"      validate:"required,gt=0"`
	Difficulty   string              `json:"difficulty"    validate:"required,oneof=easy medium hard"`
	Tags         []string            `json:"tags"`
}

type listRecipesQuery struct {
	Page       int    `query:"page"       validate:"gte=0"`
	Limit      int    `query:"limit"      validate:"gte=0,lte=100"`
	Difficulty string `query:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tag        string `query:"tag"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type ingredientResponse struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

type recipeResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Ingredients  []ingredientResponse `json:"ingredients"`
	Instructions []string             `json:"instructions"`
	PrepTimeMin  int                  `json:"prep_time_min"`
	CookTimeMin  int                  `json:"cook_time_min"`
	Servings     int                  `json:"servings"`
	Difficulty   string               `json:"difficulty"`
	Tags         []string             `json:"tags,omitempty"`
	CreatedBy    string               `json:"created_by"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listRecipesResponse struct {
	Data       []recipeResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
