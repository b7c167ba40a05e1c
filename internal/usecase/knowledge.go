package usecase

import "github.com/instadish/backend/internal/domain"

// DefaultIngredientKnowledge returns the built-in importance, substitution and alias tables
func DefaultIngredientKnowledge() domain.IngredientKnowledge {
	return domain.IngredientKnowledge{
		CriticalByCategory: map[string][]string{
			"main course": {"chicken", "beef", "pork", "fish", "salmon", "tofu", "pasta", "spaghetti", "rice"},
			"dessert":     {"flour", "sugar", "chocolate", "egg"},
			"soup":        {"broth", "stock"},
			"salad":       {"lettuce", "spinach", "greens"},
			"side dish":   {"rice", "pasta", "potato", "bread"},
			"sauce":       {"tomato", "cream"},
			"breakfast":   {"egg", "oats", "flour"},
		},
		PrimaryProteins: []string{
			"chicken", "beef", "pork", "fish", "salmon", "tuna", "tofu", "lamb", "turkey",
		},
		Important: []string{
			"onion", "garlic", "tomato", "cheese", "milk", "cream", "butter", "oil",
			"salt", "pepper", "herbs", "spices", "vegetable", "carrot", "celery",
		},
		Substitutions: map[string][]string{
			"butter":          {"olive oil", "coconut oil", "margarine"},
			"milk":            {"oat milk", "soy milk", "almond milk"},
			"egg":             {"flax egg", "chia egg", "applesauce"},
			"cream":           {"coconut cream", "greek yogurt"},
			"sour cream":      {"greek yogurt", "creme fraiche"},
			"garlic":          {"garlic powder", "shallot"},
			"onion":           {"shallot", "leek", "onion powder"},
			"lemon juice":     {"lime juice", "white wine vinegar"},
			"parmesan cheese": {"pecorino romano", "grana padano", "nutritional yeast"},
			"bacon":           {"pancetta", "smoked tempeh"},
			"beef":            {"lentils", "mushrooms", "plant-based mince"},
			"chicken":         {"tofu", "chickpeas", "turkey"},
			"olive oil":       {"vegetable oil", "avocado oil"},
			"soy sauce":       {"tamari", "coconut aminos"},
			"sugar":           {"honey", "maple syrup"},
			"flour":           {"almond flour", "oat flour"},
			"rice":            {"quinoa", "cauliflower rice"},
			"spaghetti":       {"linguine", "fettuccine", "zucchini noodles"},
			"buttermilk":      {"milk with lemon juice", "plain yogurt"},
		},
		Aliases: map[string][]string{
			"scallion":       {"green onion", "spring onion"},
			"cilantro":       {"coriander", "fresh coriander"},
			"bell pepper":    {"capsicum", "sweet pepper"},
			"zucchini":       {"courgette"},
			"eggplant":       {"aubergine"},
			"chickpea":       {"garbanzo bean"},
			"shrimp":         {"prawn"},
			"ground beef":    {"minced beef", "beef mince"},
			"powdered sugar": {"icing sugar", "confectioners sugar"},
		},
	}
}
