package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyIngredients is returned when an ingredient list normalizes to nothing
	ErrEmptyIngredients = fmt.Errorf("%w: at least one ingredient is required", ErrInvalidRequest)

	// ErrEmptyMessage is returned when a chat message is blank
	ErrEmptyMessage = fmt.Errorf("%w: message is required", ErrInvalidRequest)

	// ErrRecipeNotFound is returned when a recipe id is not in the catalog
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrDuplicateRecipe is returned when a catalog is built with a repeated id
	ErrDuplicateRecipe = errors.New("duplicate recipe id")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrCompletionUnavailable is returned when the language model service cannot be reached
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrCompletionTimeout is returned when the language model does not answer in time
	ErrCompletionTimeout = errors.New("completion service timed out")

	// ErrNutritionAPIFailure is returned when a nutrition API request fails
	ErrNutritionAPIFailure = errors.New("nutrition API request failed")

	// ErrNutritionNotFound is returned when the nutrition API has no food for a query
	ErrNutritionNotFound = errors.New("food not found in nutrition database")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
