package fatsecret

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/instadish/backend/internal/domain"
)

var errNoServings = errors.New("food has no servings")

// MapToNutritionFacts converts the first serving of a food into domain facts
func MapToNutritionFacts(food *domain.FatSecretFood) (*domain.NutritionFacts, error) {
	if food == nil || len(food.Servings) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrNutritionNotFound, errNoServings)
	}

	s := food.Servings[0]
	return &domain.NutritionFacts{
		FoodID:       food.FoodID,
		FoodName:     food.FoodName,
		Serving:      s.ServingDescription,
		Calories:     parseNumber(s.Calories),
		Protein:      parseNumber(s.Protein),
		Carbohydrate: parseNumber(s.Carbohydrate),
		Fat:          parseNumber(s.Fat),
		Fiber:        parseNumber(s.Fiber),
		Sugar:        parseNumber(s.Sugar),
		Sodium:       parseNumber(s.Sodium),
	}, nil
}

// parseNumber reads FatSecret's string-encoded numbers; missing or malformed values are 0
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
