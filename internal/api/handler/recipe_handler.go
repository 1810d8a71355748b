package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platebook/recipe-api/internal/api/metrics"
	"github.com/platebook/recipe-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// Create handles POST /api/recipes.
//
// @Summary      Create a new recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recipeRequest  true  "Recipe details"
// @Success      201   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	recipe, err := h.service.CreateRecipe(c.Request().Context(), toRecipeInput(req), actor)
	if err != nil {
		return err
	}

	metrics.RecipesCreatedTotal.WithLabelValues(string(recipe.Difficulty)).Inc()
	return c.JSON(http.StatusCreated, toRecipeResponse(recipe))
}

// Get handles GET /api/recipes/:id.
//
// @Summary      Get a recipe by id
// @Tags         recipes
// @Produce      json
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  recipeResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	recipe, err := h.service.GetRecipe(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// List handles GET /api/recipes.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Param        difficulty  query     string  false  "Filter by difficulty"
// @Param        tag         query     string  false  "Filter by tag"
// @Success      200  {object}  listRecipesResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	var q listRecipesQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.ListRecipes(c.Request().Context(), ports.ListRecipesInput{
		Difficulty: q.Difficulty,
		Tag:        q.Tag,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Update handles PUT /api/recipes/:id.
//
// @Summary      Replace a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Recipe id"
// @Param        body  body      recipeRequest  true  "Recipe details"
// @Success      200   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	recipe, err := h.service.UpdateRecipe(c.Request().Context(), c.Param("id"), toRecipeInput(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Delete handles DELETE /api/recipes/:id.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  string  true  "Recipe id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteRecipe(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
