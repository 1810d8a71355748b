package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/platebook/recipe-api/internal/api/metrics"
	"github.com/platebook/recipe-api/internal/core/domain"
)

const cacheTTL = 10 * time.Minute

// RecipeCache provides a read-through cache of recipe detail documents.
// Key format: recipe:<id>. Values are JSON snapshots with a fixed TTL;
// mutations invalidate eagerly.
type RecipeCache struct {
	client *redis.Client
}

// NewRecipeCache creates a RecipeCache wrapping the given Redis client.
func NewRecipeCache(client *redis.Client) *RecipeCache {
	return &RecipeCache{client: client}
}

// Get returns the cached recipe, or (nil, nil) on a miss.
func (c *RecipeCache) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var recipe domain.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		// A corrupt snapshot is treated as a miss; the store is authoritative.
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return &recipe, nil
}

// Set stores a snapshot of the recipe (expires after cacheTTL).
func (c *RecipeCache) Set(ctx context.Context, r *domain.Recipe) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(r.ID), data, cacheTTL).Err()
}

// Invalidate drops the cached snapshot for the given recipe id.
func (c *RecipeCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *RecipeCache) key(id string) string {
	return "recipe:" + id
}
