package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/instadish/backend/internal/domain"
)

// highImpactDelta marks ingredients worth calling out in a sustainability result
const (
	highImpactDelta    = -15.0
	maxHighImpact      = 3
	defaultMaxTips     = 4
	caloriesPerUnknown = 50
	maxCalories        = 2000
)

// ScoringService applies keyword rule tables to ingredient sets. It is stateless and safe
// for concurrent use.
type ScoringService struct {
	rules domain.ScoringRules
}

// NewScoringService creates a scoring service. Missing grade ladders and tip caps fall back to defaults.
func NewScoringService(rules domain.ScoringRules) *ScoringService {
	r := rules
	r.Sustainability.Rules = lowerRules(rules.Sustainability.Rules)
	r.Health.Rules = lowerRules(rules.Health.Rules)
	r.Carbon = lowerRules(rules.Carbon)
	r.Water = lowerRules(rules.Water)
	r.Calories = lowerRules(rules.Calories)
	r.SustainabilityTips.Rules = lowerAdvisories(rules.SustainabilityTips.Rules)
	r.HealthTips.Rules = lowerAdvisories(rules.HealthTips.Rules)

	if len(r.Grades) == 0 {
		r.Grades = DefaultGradeLadder()
	} else {
		r.Grades = append(domain.GradeLadder(nil), rules.Grades...)
		sort.SliceStable(r.Grades, func(i, j int) bool {
			return r.Grades[i].MinScore > r.Grades[j].MinScore
		})
	}
	if r.MaxTips <= 0 {
		r.MaxTips = defaultMaxTips
	}

	return &ScoringService{rules: r}
}

// Sustainability scores an ingredient set from a baseline of the sustainability table
func (s *ScoringService) Sustainability(ingredients []string) domain.SustainabilityResult {
	items := NewIngredientSet(ingredients).items

	score := s.rules.Sustainability.Baseline
	highImpact := []string{}
	for _, ing := range items {
		rule, ok := firstMatch(s.rules.Sustainability.Rules, ing)
		if !ok {
			continue
		}
		score += rule.Value
		if rule.Value <= highImpactDelta && len(highImpact) < maxHighImpact {
			highImpact = append(highImpact, ing)
		}
	}

	final := clampScore(score)
	grade, label := s.Grade(final)

	return domain.SustainabilityResult{
		Score:           final,
		Grade:           grade,
		Label:           label,
		CarbonFootprint: math.Round(sumFirstMatches(s.rules.Carbon, items)*10) / 10,
		WaterUsage:      int(math.Round(sumFirstMatches(s.rules.Water, items))),
		HighImpact:      highImpact,
		Tips:            s.selectTips(s.rules.SustainabilityTips, items),
	}
}

// Health scores an ingredient set with the heuristic health table
func (s *ScoringService) Health(ingredients []string) domain.HealthResult {
	items := NewIngredientSet(ingredients).items

	score := s.rules.Health.Baseline
	for _, ing := range items {
		if rule, ok := firstMatch(s.rules.Health.Rules, ing); ok {
			score += rule.Value
		}
	}

	final := clampScore(score)
	grade, label := s.Grade(final)

	return domain.HealthResult{
		Score:  final,
		Grade:  grade,
		Label:  label,
		Tips:   s.selectTips(s.rules.HealthTips, items),
		Source: domain.HealthSourceHeuristic,
	}
}

// HealthTips returns the health advisories for an ingredient set
func (s *ScoringService) HealthTips(ingredients []string) []string {
	return s.selectTips(s.rules.HealthTips, NewIngredientSet(ingredients).items)
}

// Grade maps a score onto the grade ladder
func (s *ScoringService) Grade(score int) (string, string) {
	for _, band := range s.rules.Grades {
		if float64(score) >= band.MinScore {
			return band.Grade, band.Label
		}
	}
	floor := s.rules.Grades[len(s.rules.Grades)-1]
	return floor.Grade, floor.Label
}

// EstimateCalories sums first-match calorie values. Unknown sets get a per-ingredient guess.
func (s *ScoringService) EstimateCalories(ingredients []string) int {
	items := NormalizeIngredients(ingredients)

	total := sumFirstMatches(s.rules.Calories, items)
	if total == 0 {
		total = float64(caloriesPerUnknown * len(items))
	}
	if total > maxCalories {
		total = maxCalories
	}
	return int(math.Round(total))
}

// selectTips walks the tip table in order; each rule fires at most once
func (s *ScoringService) selectTips(table domain.TipTable, items []string) []string {
	tips := []string{}
	seen := make(map[string]bool)

	for _, rule := range table.Rules {
		if len(tips) >= s.rules.MaxTips {
			break
		}
		if seen[rule.Text] {
			continue
		}
		for _, ing := range items {
			if strings.Contains(ing, rule.Keyword) {
				tips = append(tips, rule.Text)
				seen[rule.Text] = true
				break
			}
		}
	}

	if len(tips) == 0 && len(items) > 0 && table.Fallback != "" {
		tips = append(tips, table.Fallback)
	}
	return tips
}

// firstMatch returns the first rule whose keyword occurs in the ingredient
func firstMatch(rules []domain.KeywordRule, ingredient string) (domain.KeywordRule, bool) {
	for _, rule := range rules {
		if rule.Keyword != "" && strings.Contains(ingredient, rule.Keyword) {
			return rule, true
		}
	}
	return domain.KeywordRule{}, false
}

func sumFirstMatches(rules []domain.KeywordRule, items []string) float64 {
	var sum float64
	for _, ing := range items {
		if rule, ok := firstMatch(rules, ing); ok {
			sum += rule.Value
		}
	}
	return sum
}

// clampScore rounds half-up into [0, 100]
func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Floor(v + 0.5))
}

func lowerRules(in []domain.KeywordRule) []domain.KeywordRule {
	out := make([]domain.KeywordRule, len(in))
	for i, r := range in {
		out[i] = domain.KeywordRule{Keyword: strings.ToLower(strings.TrimSpace(r.Keyword)), Value: r.Value}
	}
	return out
}

func lowerAdvisories(in []domain.Advisory) []domain.Advisory {
	out := make([]domain.Advisory, len(in))
	for i, a := range in {
		out[i] = domain.Advisory{Keyword: strings.ToLower(strings.TrimSpace(a.Keyword)), Text: a.Text}
	}
	return out
}
