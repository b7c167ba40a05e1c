package domain

// KeywordRule maps an ingredient keyword to a numeric effect
type KeywordRule struct {
	Keyword string  `json:"keyword" mapstructure:"keyword"`
	Value   float64 `json:"value" mapstructure:"value"`
}

// Advisory maps an ingredient keyword to a tip
type Advisory struct {
	Keyword string `json:"keyword" mapstructure:"keyword"`
	Text    string `json:"text" mapstructure:"text"`
}

// ScoreTable is a baseline plus an ordered list of first-match-wins deltas
type ScoreTable struct {
	Baseline float64       `json:"baseline" mapstructure:"baseline"`
	Rules    []KeywordRule `json:"rules" mapstructure:"rules"`
}

// GradeBand is one rung of a grade ladder
type GradeBand struct {
	MinScore float64 `json:"minScore" mapstructure:"min_score"`
	Grade    string  `json:"grade" mapstructure:"grade"`
	Label    string  `json:"label" mapstructure:"label"`
}

// GradeLadder is ordered from the highest MinScore down; the last band is the floor
type GradeLadder []GradeBand

// TipTable is an ordered advisory list with an optional fallback
type TipTable struct {
	Rules    []Advisory `json:"rules" mapstructure:"rules"`
	Fallback string     `json:"fallback" mapstructure:"fallback"`
}

// ScoringRules holds every table used by sustainability and health scoring
type ScoringRules struct {
	Sustainability     ScoreTable    `json:"sustainability" mapstructure:"sustainability"`
	Health             ScoreTable    `json:"health" mapstructure:"health"`
	Carbon             []KeywordRule `json:"carbon" mapstructure:"carbon"`
	Water              []KeywordRule `json:"water" mapstructure:"water"`
	Calories           []KeywordRule `json:"calories" mapstructure:"calories"`
	SustainabilityTips TipTable      `json:"sustainabilityTips" mapstructure:"sustainability_tips"`
	HealthTips         TipTable      `json:"healthTips" mapstructure:"health_tips"`
	Grades             GradeLadder   `json:"grades" mapstructure:"grades"`
	MaxTips            int           `json:"maxTips" mapstructure:"max_tips"`
}

// SustainabilityResult is the environmental score of an ingredient set
type SustainabilityResult struct {
	Score           int      `json:"score"`
	Grade           string   `json:"grade"`
	Label           string   `json:"label"`
	CarbonFootprint float64  `json:"carbonFootprint"` // kg CO2e
	WaterUsage      int      `json:"waterUsage"`      // litres
	HighImpact      []string `json:"highImpact"`
	Tips            []string `json:"tips"`
}

// Health score sources
const (
	HealthSourceHeuristic    = "heuristic"
	HealthSourceNutritionAPI = "nutrition_api"
)

// HealthResult is the health score of an ingredient set
type HealthResult struct {
	Score     int             `json:"score"`
	Grade     string          `json:"grade"`
	Label     string          `json:"label"`
	Tips      []string        `json:"tips"`
	Source    string          `json:"source"`
	Degraded  bool            `json:"degraded"`
	Nutrition *NutritionFacts `json:"nutrition,omitempty"`
}

// IngredientAnalysis is the combined analyze response
type IngredientAnalysis struct {
	Ingredients    []string             `json:"ingredients"`
	Sustainability SustainabilityResult `json:"sustainability"`
	Health         HealthResult         `json:"health"`
}

// IngredientKnowledge drives the extended match classification
type IngredientKnowledge struct {
	// CriticalByCategory lists ingredients a recipe category cannot do without
	CriticalByCategory map[string][]string `json:"criticalByCategory" mapstructure:"critical_by_category"`
	PrimaryProteins    []string            `json:"primaryProteins" mapstructure:"primary_proteins"`
	Important          []string            `json:"important" mapstructure:"important"`
	Substitutions      map[string][]string `json:"substitutions" mapstructure:"substitutions"`
	Aliases            map[string][]string `json:"aliases" mapstructure:"aliases"`
}
