package domain

// Recipe is a single catalog entry. Recipes are immutable once loaded.
type Recipe struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Category     string   `json:"category"`
	PrepTime     string   `json:"prepTime"`
	CookTime     string   `json:"cookTime"`
	Difficulty   string   `json:"difficulty"`
}

// Clone returns a deep copy so callers cannot alter catalog-owned slices
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Instructions = append([]string(nil), r.Instructions...)
	return c
}

// Difficulty levels
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// MatchResult describes how much of a recipe the user's ingredients cover
type MatchResult struct {
	Matches           int      `json:"matches"`
	Total             int      `json:"total"`
	Percentage        int      `json:"percentage"` // 0-100
	Missing           []string `json:"missing"`
	HasAllIngredients bool     `json:"hasAllIngredients"`
}

// MissingAnalysis classifies missing ingredients by importance and suggests replacements
type MissingAnalysis struct {
	Critical                  []string            `json:"critical"`
	Important                 []string            `json:"important"`
	Replaceable               []string            `json:"replaceable"`
	Substitutions             map[string][]string `json:"substitutions,omitempty"`
	CloseMatches              map[string]string   `json:"closeMatches,omitempty"`
	WeightedPercentage        int                 `json:"weightedPercentage"`
	HasAllCriticalIngredients bool                `json:"hasAllCriticalIngredients"`
}

// RankedRecipe is a recipe returned from search together with its derived scores
type RankedRecipe struct {
	Recipe
	Match           MatchResult           `json:"match"`
	MissingAnalysis *MissingAnalysis      `json:"missingAnalysis,omitempty"`
	Sustainability  *SustainabilityResult `json:"sustainability,omitempty"`
	Health          *HealthResult         `json:"health,omitempty"`
	Relevance       float64               `json:"relevance,omitempty"`
}

// RecipeDetail is the single-recipe view
type RecipeDetail struct {
	Recipe
	EstimatedCalories int                  `json:"estimatedCalories"`
	Sustainability    SustainabilityResult `json:"sustainability"`
	Health            HealthResult         `json:"health"`
}

// SortKey selects the primary ranking criterion
type SortKey string

// SortOrder selects the ranking direction
type SortOrder string

const (
	SortByMatch          SortKey = "match"
	SortBySustainability SortKey = "sustainability"
	SortByHealth         SortKey = "health"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchRequest is the recipe search input
type SearchRequest struct {
	Ingredients   []string  `json:"ingredients"`
	Query         string    `json:"query,omitempty"`
	Limit         int       `json:"limit,omitempty" binding:"omitempty,min=1,max=50"`
	SortBy        SortKey   `json:"sort_by,omitempty" binding:"omitempty,oneof=match sustainability health"`
	SortOrder     SortOrder `json:"sort_order,omitempty" binding:"omitempty,oneof=asc desc"`
	IncludeScores bool      `json:"include_scores,omitempty"`
}

// SearchCriteria echoes what a search was run with
type SearchCriteria struct {
	Query        string    `json:"query"`
	Ingredients  []string  `json:"ingredients"`
	SortBy       SortKey   `json:"sortBy"`
	SortOrder    SortOrder `json:"sortOrder"`
	TotalMatches int       `json:"totalMatches"`
}

// SearchResult is the output of a combined search
type SearchResult struct {
	Recipes  []RankedRecipe `json:"data"`
	Criteria SearchCriteria `json:"searchCriteria"`
}
