package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RecipeSource loads the recipe dataset once at startup
type RecipeSource interface {
	LoadRecipes(ctx context.Context) ([]Recipe, error)
}

// CompletionClient is a text-completion collaborator (a locally hosted language model)
type CompletionClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) error
	Model() string
}

// NutritionClient looks up per-serving nutrients for a free-text food query
type NutritionClient interface {
	SearchFood(ctx context.Context, query string) (*NutritionFacts, error)
}
