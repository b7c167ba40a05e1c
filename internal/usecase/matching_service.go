package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
)

// Ingredient importance tiers and their weights for the weighted percentage
const (
	tierCritical    = 3
	tierImportant   = 2
	tierReplaceable = 1
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	Knowledge           domain.IngredientKnowledge
	EnableFuzzyMatching bool
	FuzzyThreshold      float64 // 0-1 similarity
	MaxSubstitutions    int
}

// MatchingService scores a user's ingredients against recipes
type MatchingService struct {
	knowledge           domain.IngredientKnowledge
	criticalByCategory  map[string][]string
	primaryProteins     []string
	important           []string
	aliasGroups         map[string]string
	substitutionKeys    []string
	enableFuzzyMatching bool
	fuzzyThreshold      float64
	maxSubstitutions    int
	logger              *zap.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig, logger *zap.Logger) *MatchingService {
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := config.FuzzyThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}

	maxSubs := config.MaxSubstitutions
	if maxSubs <= 0 {
		maxSubs = 5
	}

	knowledge := config.Knowledge
	if knowledge.PrimaryProteins == nil && knowledge.Important == nil && knowledge.Substitutions == nil {
		knowledge = DefaultIngredientKnowledge()
	}

	s := &MatchingService{
		knowledge:           knowledge,
		criticalByCategory:  make(map[string][]string, len(knowledge.CriticalByCategory)),
		primaryProteins:     canonicalAll(knowledge.PrimaryProteins),
		important:           canonicalAll(knowledge.Important),
		aliasGroups:         buildAliasGroups(knowledge.Aliases),
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyThreshold:      threshold,
		maxSubstitutions:    maxSubs,
		logger:              logger,
	}

	for category, keywords := range knowledge.CriticalByCategory {
		s.criticalByCategory[strings.ToLower(category)] = canonicalAll(keywords)
	}

	for key := range knowledge.Substitutions {
		s.substitutionKeys = append(s.substitutionKeys, key)
	}
	// Longest key first so "sour cream" wins over "cream"
	sort.Slice(s.substitutionKeys, func(i, j int) bool {
		a, b := s.substitutionKeys[i], s.substitutionKeys[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	return s
}

// Match compares a recipe's ingredient list with the user's set.
// Percentage uses the raw list length as denominator; an empty list scores 0.
func (s *MatchingService) Match(recipeIngredients []string, user IngredientSet) domain.MatchResult {
	recipeSet := NewIngredientSet(recipeIngredients)

	matches := 0
	missing := make([]string, 0, recipeSet.Len())
	for _, ing := range recipeSet.items {
		if user.Contains(ing) {
			matches++
			continue
		}
		missing = append(missing, ing)
	}

	total := len(recipeIngredients)

	return domain.MatchResult{
		Matches:           matches,
		Total:             total,
		Percentage:        percentOf(float64(matches), float64(total)),
		Missing:           missing,
		HasAllIngredients: recipeSet.Len() > 0 && len(missing) == 0,
	}
}

// AnalyzeMissing partitions the missing ingredients of a match into importance tiers,
// proposes substitutions and flags user ingredients that are probably the same thing.
func (s *MatchingService) AnalyzeMissing(recipe domain.Recipe, match domain.MatchResult, user IngredientSet) *domain.MissingAnalysis {
	analysis := &domain.MissingAnalysis{
		Critical:    []string{},
		Important:   []string{},
		Replaceable: []string{},
	}

	for _, m := range match.Missing {
		switch s.classify(m, recipe.Category) {
		case tierCritical:
			analysis.Critical = append(analysis.Critical, m)
		case tierImportant:
			analysis.Important = append(analysis.Important, m)
		default:
			analysis.Replaceable = append(analysis.Replaceable, m)
		}
	}
	analysis.HasAllCriticalIngredients = len(analysis.Critical) == 0

	for i, m := range match.Missing {
		if i >= s.maxSubstitutions {
			break
		}
		if candidates := s.substitutesFor(m); len(candidates) > 0 {
			if analysis.Substitutions == nil {
				analysis.Substitutions = make(map[string][]string)
			}
			analysis.Substitutions[m] = candidates
		}
	}

	if s.enableFuzzyMatching {
		for _, m := range match.Missing {
			if u, ok := s.closeMatch(m, user); ok {
				if analysis.CloseMatches == nil {
					analysis.CloseMatches = make(map[string]string)
				}
				analysis.CloseMatches[m] = u
			}
		}
	}

	analysis.WeightedPercentage = s.weightedPercentage(recipe, user)

	s.logger.Debug("missing ingredients analyzed",
		zap.Int("recipe_id", recipe.ID),
		zap.Int("critical", len(analysis.Critical)),
		zap.Int("important", len(analysis.Important)),
		zap.Int("replaceable", len(analysis.Replaceable)),
		zap.Int("close_matches", len(analysis.CloseMatches)),
	)

	return analysis
}

// classify returns the importance tier of a normalized ingredient for a category
func (s *MatchingService) classify(ingredient, category string) int {
	canonical := canonicalIngredient(ingredient)
	for _, kw := range s.criticalByCategory[strings.ToLower(category)] {
		if containsWord(canonical, kw) {
			return tierCritical
		}
	}
	for _, kw := range s.primaryProteins {
		if containsWord(canonical, kw) {
			return tierCritical
		}
	}
	for _, kw := range s.important {
		if containsWord(canonical, kw) {
			return tierImportant
		}
	}
	return tierReplaceable
}

// weightedPercentage weighs each distinct recipe ingredient by its tier
func (s *MatchingService) weightedPercentage(recipe domain.Recipe, user IngredientSet) int {
	recipeSet := NewIngredientSet(recipe.Ingredients)

	var matched, total float64
	for _, ing := range recipeSet.items {
		w := float64(s.classify(ing, recipe.Category))
		total += w
		if user.Contains(ing) {
			matched += w
		}
	}

	return percentOf(matched, total)
}

// substitutesFor looks up replacement candidates, exact key first then the longest contained key
func (s *MatchingService) substitutesFor(ingredient string) []string {
	canonical := canonicalIngredient(ingredient)

	if subs, ok := s.knowledge.Substitutions[canonical]; ok {
		return append([]string(nil), subs...)
	}
	if subs, ok := s.knowledge.Substitutions[ingredient]; ok {
		return append([]string(nil), subs...)
	}
	for _, key := range s.substitutionKeys {
		if containsWord(canonical, key) {
			return append([]string(nil), s.knowledge.Substitutions[key]...)
		}
	}
	return nil
}

// closeMatch finds a user ingredient that is most likely the missing one under another spelling
func (s *MatchingService) closeMatch(missing string, user IngredientSet) (string, bool) {
	cm := canonicalIngredient(missing)
	if cm == "" {
		return "", false
	}

	for _, u := range user.items {
		cu := canonicalIngredient(u)
		if cu == "" {
			continue
		}
		if cu == cm {
			return u, true
		}
		if g, ok := s.aliasGroups[cm]; ok && g == s.aliasGroups[cu] {
			return u, true
		}
		if similarity(cm, cu) >= s.fuzzyThreshold {
			return u, true
		}
	}
	return "", false
}

// containsWord reports whether phrase occurs in s on word boundaries
func containsWord(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	return s == phrase ||
		strings.HasPrefix(s, phrase+" ") ||
		strings.HasSuffix(s, " "+phrase) ||
		strings.Contains(s, " "+phrase+" ")
}

func canonicalAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := canonicalIngredient(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// buildAliasGroups maps every alias (and the key itself) to its group key
func buildAliasGroups(aliases map[string][]string) map[string]string {
	groups := make(map[string]string)
	for key, alts := range aliases {
		k := canonicalIngredient(key)
		groups[k] = k
		for _, a := range alts {
			groups[canonicalIngredient(a)] = k
		}
	}
	return groups
}

// similarity returns 1 - distance/maxLen, in [0, 1]
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// percentOf rounds 100*n/d half-up into [0, 100]; a zero denominator yields 0
func percentOf(n, d float64) int {
	if d <= 0 {
		return 0
	}
	p := int(math.Floor(100*n/d + 0.5))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
