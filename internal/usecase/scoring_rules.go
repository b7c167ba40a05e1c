package usecase

import "github.com/instadish/backend/internal/domain"

// DefaultGradeLadder is the letter grade ladder shared by sustainability and health
func DefaultGradeLadder() domain.GradeLadder {
	return domain.GradeLadder{
		{MinScore: 85, Grade: "A+", Label: "Excellent"},
		{MinScore: 75, Grade: "A", Label: "Very Good"},
		{MinScore: 65, Grade: "B", Label: "Good"},
		{MinScore: 55, Grade: "C", Label: "Fair"},
		{MinScore: 45, Grade: "D", Label: "Poor"},
		{MinScore: 0, Grade: "F", Label: "Very Poor"},
	}
}

// DefaultScoringRules returns the built-in keyword tables.
// Tables are first-match-wins, so specific keywords precede the generic ones they contain.
func DefaultScoringRules() domain.ScoringRules {
	return domain.ScoringRules{
		Sustainability: domain.ScoreTable{
			Baseline: 100,
			Rules: []domain.KeywordRule{
				{Keyword: "beef", Value: -25},
				{Keyword: "lamb", Value: -25},
				{Keyword: "veal", Value: -22},
				{Keyword: "goat", Value: -18},
				{Keyword: "cheese", Value: -20},
				{Keyword: "peanut butter", Value: -3},
				{Keyword: "buttermilk", Value: -8},
				{Keyword: "butter", Value: -15},
				{Keyword: "shrimp", Value: -15},
				{Keyword: "prawn", Value: -15},
				{Keyword: "palm oil", Value: -10},
				{Keyword: "pork", Value: -12},
				{Keyword: "bacon", Value: -12},
				{Keyword: "sausage", Value: -12},
				{Keyword: "duck", Value: -12},
				{Keyword: "turkey", Value: -10},
				{Keyword: "chicken", Value: -8},
				{Keyword: "salmon", Value: -8},
				{Keyword: "tuna", Value: -8},
				{Keyword: "fish", Value: -6},
				{Keyword: "chocolate", Value: -8},
				{Keyword: "coffee", Value: -6},
				{Keyword: "almond milk", Value: -4},
				{Keyword: "coconut milk", Value: -4},
				{Keyword: "oat milk", Value: -1},
				{Keyword: "soy milk", Value: -1},
				{Keyword: "cream", Value: -8},
				{Keyword: "milk", Value: -6},
				{Keyword: "yogurt", Value: -6},
				{Keyword: "eggplant", Value: 0},
				{Keyword: "egg", Value: -5},
				{Keyword: "rice", Value: -4},
				{Keyword: "avocado", Value: -3},
				{Keyword: "sugar", Value: -2},
				{Keyword: "lentil", Value: 5},
				{Keyword: "chickpea", Value: 5},
				{Keyword: "bean", Value: 5},
				{Keyword: "tofu", Value: 3},
				{Keyword: "tempeh", Value: 3},
			},
		},
		Health: domain.ScoreTable{
			Baseline: 50,
			Rules: []domain.KeywordRule{
				{Keyword: "spinach", Value: 12},
				{Keyword: "kale", Value: 12},
				{Keyword: "broccoli", Value: 12},
				{Keyword: "quinoa", Value: 10},
				{Keyword: "lentil", Value: 10},
				{Keyword: "chickpea", Value: 10},
				{Keyword: "jelly bean", Value: -12},
				{Keyword: "bean", Value: 9},
				{Keyword: "salmon", Value: 10},
				{Keyword: "tuna", Value: 8},
				{Keyword: "fish", Value: 8},
				{Keyword: "tofu", Value: 8},
				{Keyword: "brown rice", Value: 8},
				{Keyword: "white rice", Value: -3},
				{Keyword: "oat", Value: 8},
				{Keyword: "sweet potato", Value: 8},
				{Keyword: "butternut", Value: 8},
				{Keyword: "carrot", Value: 8},
				{Keyword: "eggplant", Value: 7},
				{Keyword: "tomato", Value: 7},
				{Keyword: "mushroom", Value: 6},
				{Keyword: "avocado", Value: 6},
				{Keyword: "chicken", Value: 6},
				{Keyword: "turkey", Value: 6},
				{Keyword: "egg", Value: 5},
				{Keyword: "garlic", Value: 5},
				{Keyword: "olive oil", Value: 5},
				{Keyword: "peanut butter", Value: 2},
				{Keyword: "nutmeg", Value: 0},
				{Keyword: "nut", Value: 5},
				{Keyword: "onion", Value: 4},
				{Keyword: "bacon", Value: -12},
				{Keyword: "sausage", Value: -12},
				{Keyword: "hot dog", Value: -12},
				{Keyword: "salami", Value: -10},
				{Keyword: "candy", Value: -12},
				{Keyword: "soda", Value: -12},
				{Keyword: "fried", Value: -10},
				{Keyword: "sugar", Value: -10},
				{Keyword: "syrup", Value: -8},
				{Keyword: "cream", Value: -8},
				{Keyword: "butter", Value: -8},
				{Keyword: "chocolate", Value: -6},
				{Keyword: "cheese", Value: -6},
				{Keyword: "white bread", Value: -6},
				{Keyword: "honey", Value: -4},
				{Keyword: "salt", Value: -4},
				{Keyword: "beef", Value: -4},
				{Keyword: "pork", Value: -4},
				{Keyword: "flour", Value: -3},
			},
		},
		// kg CO2e per kg of food
		Carbon: []domain.KeywordRule{
			{Keyword: "lamb", Value: 39.2},
			{Keyword: "beef", Value: 27.0},
			{Keyword: "cheese", Value: 13.5},
			{Keyword: "pork", Value: 12.1},
			{Keyword: "bacon", Value: 12.1},
			{Keyword: "peanut butter", Value: 2.5},
			{Keyword: "buttermilk", Value: 1.9},
			{Keyword: "butter", Value: 11.9},
			{Keyword: "salmon", Value: 11.9},
			{Keyword: "shrimp", Value: 11.8},
			{Keyword: "turkey", Value: 10.9},
			{Keyword: "chicken", Value: 6.9},
			{Keyword: "tuna", Value: 6.1},
			{Keyword: "eggplant", Value: 1.3},
			{Keyword: "egg", Value: 4.8},
			{Keyword: "sweet potato", Value: 0.9},
			{Keyword: "potato", Value: 2.9},
			{Keyword: "rice", Value: 2.7},
			{Keyword: "nut", Value: 2.3},
			{Keyword: "yogurt", Value: 2.2},
			{Keyword: "almond milk", Value: 0.7},
			{Keyword: "oat milk", Value: 0.9},
			{Keyword: "milk", Value: 1.9},
			{Keyword: "broccoli", Value: 2.0},
			{Keyword: "tofu", Value: 2.0},
			{Keyword: "bean", Value: 2.0},
			{Keyword: "tomato", Value: 1.1},
			{Keyword: "lentil", Value: 0.9},
		},
		// litres of water per kg of food
		Water: []domain.KeywordRule{
			{Keyword: "beef", Value: 15415},
			{Keyword: "lamb", Value: 10412},
			{Keyword: "chocolate", Value: 17196},
			{Keyword: "pork", Value: 5988},
			{Keyword: "bacon", Value: 5988},
			{Keyword: "peanut butter", Value: 3974},
			{Keyword: "butter", Value: 5553},
			{Keyword: "chicken", Value: 4325},
			{Keyword: "eggplant", Value: 362},
			{Keyword: "egg", Value: 3265},
			{Keyword: "cheese", Value: 3178},
			{Keyword: "rice", Value: 2497},
			{Keyword: "pasta", Value: 1849},
			{Keyword: "spaghetti", Value: 1849},
			{Keyword: "bread", Value: 1608},
			{Keyword: "milk", Value: 1020},
			{Keyword: "avocado", Value: 1981},
			{Keyword: "potato", Value: 287},
			{Keyword: "tomato", Value: 214},
			{Keyword: "lettuce", Value: 237},
			{Keyword: "carrot", Value: 195},
		},
		// kcal per typical portion
		Calories: []domain.KeywordRule{
			{Keyword: "chicken", Value: 165},
			{Keyword: "beef", Value: 250},
			{Keyword: "pork", Value: 242},
			{Keyword: "fish", Value: 206},
			{Keyword: "salmon", Value: 208},
			{Keyword: "rice", Value: 130},
			{Keyword: "pasta", Value: 131},
			{Keyword: "bread", Value: 265},
			{Keyword: "sweet potato", Value: 86},
			{Keyword: "potato", Value: 77},
			{Keyword: "onion", Value: 40},
			{Keyword: "garlic", Value: 149},
			{Keyword: "tomato", Value: 18},
			{Keyword: "carrot", Value: 41},
			{Keyword: "broccoli", Value: 34},
			{Keyword: "cheese", Value: 113},
			{Keyword: "milk", Value: 42},
			{Keyword: "egg", Value: 155},
			{Keyword: "butter", Value: 717},
			{Keyword: "oil", Value: 884},
			{Keyword: "sugar", Value: 387},
			{Keyword: "flour", Value: 364},
			{Keyword: "chocolate", Value: 546},
			{Keyword: "nuts", Value: 607},
		},
		SustainabilityTips: domain.TipTable{
			Rules: []domain.Advisory{
				{Keyword: "beef", Text: "Swap beef for beans or lentils to cut the dish's carbon footprint by up to 90%."},
				{Keyword: "lamb", Text: "Lamb has the highest emissions of common meats; chickpeas or mushrooms work well instead."},
				{Keyword: "cheese", Text: "Use a smaller amount of a strongly flavoured cheese, or try nutritional yeast."},
				{Keyword: "bacon", Text: "Cured pork is emission-heavy; smoked paprika gives a similar flavour."},
				{Keyword: "pork", Text: "Choose pork from higher-welfare farms and keep it as a side rather than the centre of the plate."},
				{Keyword: "butter", Text: "Olive or rapeseed oil has a far lower footprint than butter."},
				{Keyword: "chicken", Text: "Poultry has a lower footprint than red meat; choose free-range where possible."},
				{Keyword: "milk", Text: "Oat or soy milk uses a fraction of the land and water dairy milk needs."},
				{Keyword: "rice", Text: "Rice paddies emit methane; try quinoa, barley or bulgur for variety."},
				{Keyword: "avocado", Text: "Avocados are water-intensive; enjoy them as an occasional topping."},
				{Keyword: "tomato", Text: "Buy tomatoes in season to avoid heated-greenhouse emissions."},
				{Keyword: "lentil", Text: "Great choice: legumes enrich the soil and have one of the lowest footprints."},
				{Keyword: "bean", Text: "Great choice: beans are a low-impact protein."},
			},
			Fallback: "Buy local and seasonal ingredients when possible.",
		},
		HealthTips: domain.TipTable{
			Rules: []domain.Advisory{
				{Keyword: "spinach", Text: "Spinach adds iron, folate and vitamin K."},
				{Keyword: "broccoli", Text: "Broccoli is rich in fibre and vitamin C; steam it lightly to keep nutrients."},
				{Keyword: "salmon", Text: "Salmon provides omega-3 fats that support heart health."},
				{Keyword: "lentil", Text: "Lentils are packed with fibre and plant protein."},
				{Keyword: "oat", Text: "Oats contain beta-glucan, which helps manage cholesterol."},
				{Keyword: "egg", Text: "Eggs are an affordable source of complete protein."},
				{Keyword: "bacon", Text: "Processed meats are high in sodium; keep portions small."},
				{Keyword: "sausage", Text: "Processed meats are high in sodium; keep portions small."},
				{Keyword: "sugar", Text: "Cut added sugar by a third; most recipes taste just as good."},
				{Keyword: "butter", Text: "Try olive oil in place of butter for heart-healthier fats."},
				{Keyword: "cheese", Text: "Cheese brings calcium but also saturated fat; a little goes a long way."},
				{Keyword: "salt", Text: "Season with herbs, citrus or spices to reduce the salt you need."},
			},
			Fallback: "Add a portion of vegetables to boost fibre and micronutrients.",
		},
		Grades:  DefaultGradeLadder(),
		MaxTips: 4,
	}
}
