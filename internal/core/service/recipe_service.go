package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/platebook/recipe-api/internal/core/domain"
	"github.com/platebook/recipe-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// RecipeCache abstracts the read-through cache for recipe details (Redis).
// Get returns (nil, nil) on a miss.
type RecipeCache interface {
	Get(ctx context.Context, id string) (*domain.Recipe, error)
	Set(ctx context.Context, r *domain.Recipe) error
	Invalidate(ctx context.Context, id string) error
}

// AuditSink receives mutation entries for asynchronous persistence.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}

// RecipeService implements recipe CRUD on top of the repository, with a
// read-through cache and an audit trail for mutations.
type RecipeService struct {
	repo   ports.RecipeRepository
	cache  RecipeCache
	audit  AuditSink
	logger zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, cache RecipeCache, audit AuditSink, logger zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, cache: cache, audit: audit, logger: logger}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
	now := time.Now().UTC()
	recipe := toRecipe(input)
	recipe.CreatedBy = actor.ID
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	created, err := s.repo.Create(ctx, recipe)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create recipe")
		return nil, err
	}

	s.emitAudit(created.ID, domain.AuditActionCreate, actor)
	s.logger.Info().Str("recipe_id", created.ID).Str("title", created.Title).Msg("recipe created")
	return created, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("recipe_id", id).Msg("cache read failed, falling back to store")
	} else if cached != nil {
		return cached, nil
	}

	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, recipe); err != nil {
		s.logger.Warn().Err(err).Str("recipe_id", id).Msg("cache write failed")
	}
	return recipe, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context, input ports.ListRecipesInput) (*ports.ListRecipesResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListRecipesFilter{
		Difficulty: input.Difficulty,
		Tag:        input.Tag,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListRecipesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, input ports.RecipeInput, actor ports.Actor) (*domain.Recipe, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recipe := toRecipe(input)
	recipe.ID = existing.ID
	recipe.CreatedBy = existing.CreatedBy
	recipe.CreatedAt = existing.CreatedAt
	recipe.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, recipe)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("recipe_id", id).Msg("cache invalidation failed")
	}
	s.emitAudit(id, domain.AuditActionUpdate, actor)
	s.logger.Info().Str("recipe_id", id).Msg("recipe updated")
	return updated, nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id string, actor ports.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("recipe_id", id).Msg("cache invalidation failed")
	}
	s.emitAudit(id, domain.AuditActionDelete, actor)
	s.logger.Info().Str("recipe_id", id).Msg("recipe deleted")
	return nil
}

func (s *RecipeService) emitAudit(recipeID, action string, actor ports.Actor) {
	s.audit.Enqueue(domain.AuditEntry{
		RecipeID:  recipeID,
		Action:    action,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Timestamp: time.Now().UTC(),
	})
}

func toRecipe(input ports.RecipeInput) *domain.Recipe {
	ingredients := make([]domain.Ingredient, len(input.Ingredients))
	for i, ing := range input.Ingredients {
		ingredients[i] = domain.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}
	return &domain.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  ingredients,
		Instructions: input.Instructions,
		PrepTimeMin:  input.PrepTimeMin,
		CookTimeMin:  input.CookTimeMin,
		Servings:     input.Servings,
		Difficulty:   domain.Difficulty(input.Difficulty),
		Tags:         input.Tags,
	}
}
