package domain

import "time"

// NutritionFacts holds per-serving nutrients for one food
type NutritionFacts struct {
	FoodID       string    `json:"foodId,omitempty"`
	FoodName     string    `json:"foodName,omitempty"`
	Serving      string    `json:"serving,omitempty"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`      // grams
	Carbohydrate float64   `json:"carbohydrate"` // grams
	Fat          float64   `json:"fat"`          // grams
	Fiber        float64   `json:"fiber"`        // grams
	Sugar        float64   `json:"sugar"`        // grams
	Sodium       float64   `json:"sodium"`       // milligrams
	CachedAt     time.Time `json:"cachedAt,omitempty"`
}

// Add accumulates another food's nutrients into n
func (n *NutritionFacts) Add(o NutritionFacts) {
	n.Calories += o.Calories
	n.Protein += o.Protein
	n.Carbohydrate += o.Carbohydrate
	n.Fat += o.Fat
	n.Fiber += o.Fiber
	n.Sugar += o.Sugar
	n.Sodium += o.Sodium
}

// FatSecretFoodRef is a single hit from a foods.search call
type FatSecretFoodRef struct {
	FoodID   string `json:"food_id"`
	FoodName string `json:"food_name"`
}

// FatSecretServing is a serving entry of a food.get response. FatSecret encodes numbers as strings.
type FatSecretServing struct {
	ServingDescription string `json:"serving_description"`
	Calories           string `json:"calories"`
	Protein            string `json:"protein"`
	Carbohydrate       string `json:"carbohydrate"`
	Fat                string `json:"fat"`
	Fiber              string `json:"fiber"`
	Sugar              string `json:"sugar"`
	Sodium             string `json:"sodium"`
}

// FatSecretFood is the food object returned by food.get.v2
type FatSecretFood struct {
	FoodID   string             `json:"food_id"`
	FoodName string             `json:"food_name"`
	Servings []FatSecretServing `json:"-"`
}
