package catalog

import (
	"encoding/json"
	"strings"

	"github.com/instadish/backend/internal/domain"
)

var (
	soupWords    = []string{"soup", "broth", "stock", "bouillon"}
	sauceWords   = []string{"sauce", "dressing", "marinade", "gravy"}
	saladWords   = []string{"salad", "lettuce", "arugula", "kale"}
	starchWords  = []string{"bread", "pasta", "rice", "noodle", "quinoa"}
	proteinWords = []string{"chicken", "beef", "pork", "fish", "egg", "tofu"}
	ovenWords    = []string{"bake", "roast", "oven"}
	stoveWords   = []string{"simmer", "boil", "cook"}
)

// complete fills the descriptive fields a source left empty
func complete(r domain.Recipe) domain.Recipe {
	if r.Category == "" {
		r.Category = DeriveCategory(r.Ingredients)
	}
	if r.PrepTime == "" {
		r.PrepTime = EstimatePrepTime(r.Ingredients, r.Instructions)
	}
	if r.CookTime == "" {
		r.CookTime = EstimateCookTime(r.Instructions)
	}
	if r.Difficulty == "" {
		r.Difficulty = EstimateDifficulty(r.Ingredients, r.Instructions)
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	return r
}

// DeriveCategory guesses a category from ingredient text.
// Greens or starches next to a protein make a main course.
func DeriveCategory(ingredients []string) string {
	text := strings.ToLower(strings.Join(ingredients, " "))
	hasProtein := containsAny(text, proteinWords)

	switch {
	case containsAny(text, soupWords):
		return "Soup"
	case containsAny(text, sauceWords):
		return "Sauce"
	case containsAny(text, saladWords):
		if hasProtein {
			return "Main Course"
		}
		return "Salad"
	case containsAny(text, starchWords):
		if hasProtein {
			return "Main Course"
		}
		return "Side Dish"
	default:
		return "Main Course"
	}
}

// EstimatePrepTime buckets by ingredient and step count
func EstimatePrepTime(ingredients, instructions []string) string {
	switch c := len(ingredients) + len(instructions); {
	case c < 5:
		return "5 min"
	case c < 10:
		return "15 min"
	default:
		return "30 min"
	}
}

// EstimateCookTime looks for oven or stove-top verbs in the instructions
func EstimateCookTime(instructions []string) string {
	text := strings.ToLower(strings.Join(instructions, " "))
	switch {
	case containsAny(text, ovenWords):
		return "1+ hours"
	case containsAny(text, stoveWords):
		return "30 min"
	default:
		return "15 min"
	}
}

// EstimateDifficulty buckets by ingredient and step count
func EstimateDifficulty(ingredients, instructions []string) string {
	switch c := len(ingredients) + len(instructions); {
	case c < 5:
		return domain.DifficultyEasy
	case c < 10:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyHard
	}
}

// parseList reads a JSON string array, falling back to a bracketed comma list
// with optional quotes around each item.
func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		raw = raw[1 : len(raw)-1]
	}

	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if len(item) >= 2 && (item[0] == '"' || item[0] == '\'') && item[len(item)-1] == item[0] {
			item = strings.TrimSpace(item[1 : len(item)-1])
		}
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
