package usecase

import (
	"sort"
	"strings"

	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
)

// Relevance weights for keyword overlap
const (
	nameWeight       = 3.0
	ingredientWeight = 2.0
	categoryWeight   = 1.0
)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// RankOptions controls a ranking pass
type RankOptions struct {
	SortBy          domain.SortKey
	SortOrder       domain.SortOrder
	Limit           int
	IncludeScores   bool
	IncludeAnalysis bool
}

// SearchService ranks catalog recipes against a user's ingredients and free-text queries
type SearchService struct {
	catalog      *domain.Catalog
	matcher      *MatchingService
	scorer       *ScoringService
	preprocessor *QueryPreprocessor
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	catalog *domain.Catalog,
	matcher *MatchingService,
	scorer *ScoringService,
	preprocessor *QueryPreprocessor,
	config SearchConfig,
	logger *zap.Logger,
) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 50
	}
	defaultLimit := config.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}

	return &SearchService{
		catalog:      catalog,
		matcher:      matcher,
		scorer:       scorer,
		preprocessor: preprocessor,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger,
	}
}

// Rank matches every catalog recipe against the user's set, drops recipes with no match,
// sorts and truncates. An empty set yields an empty result.
func (s *SearchService) Rank(user IngredientSet, opts RankOptions) []domain.RankedRecipe {
	ranked := s.rank(s.catalog.All(), user, opts, nil)
	return truncate(ranked, s.resolveLimit(opts.Limit))
}

// rank is Rank over an explicit candidate list, without truncation
func (s *SearchService) rank(candidates []domain.Recipe, user IngredientSet, opts RankOptions, relevance map[int]float64) []domain.RankedRecipe {
	ranked := []domain.RankedRecipe{}
	if user.Len() == 0 {
		return ranked
	}

	sortBy, order := resolveSort(opts.SortBy, opts.SortOrder)
	withScores := opts.IncludeScores || sortBy != domain.SortByMatch

	for _, recipe := range candidates {
		match := s.matcher.Match(recipe.Ingredients, user)
		if match.Matches == 0 {
			continue
		}

		rr := domain.RankedRecipe{Recipe: recipe, Match: match, Relevance: relevance[recipe.ID]}
		if withScores {
			s.attachScores(&rr)
		}
		if opts.IncludeAnalysis {
			rr.MissingAnalysis = s.matcher.AnalyzeMissing(recipe, match, user)
		}
		ranked = append(ranked, rr)
	}

	sortRanked(ranked, sortBy, order)
	return ranked
}

// TextSearch scores recipes by keyword overlap with a free-text query
func (s *SearchService) TextSearch(query string, limit int) []domain.RankedRecipe {
	return truncate(s.textSearch(query), s.resolveLimit(limit))
}

func (s *SearchService) textSearch(query string) []domain.RankedRecipe {
	hits := []domain.RankedRecipe{}

	keywords := s.preprocessor.Keywords(query)
	if len(keywords) == 0 {
		return hits
	}

	for _, recipe := range s.catalog.All() {
		if rel := relevanceOf(recipe, keywords); rel > 0 {
			hits = append(hits, domain.RankedRecipe{Recipe: recipe, Relevance: rel})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Relevance > hits[j].Relevance
	})

	s.logger.Debug("text search",
		zap.String("query", query),
		zap.Strings("keywords", keywords),
		zap.Int("hits", len(hits)),
	)

	return hits
}

// Search combines free-text and ingredient search.
// A query narrows candidates to text hits; ingredients rank them; otherwise relevance orders them.
func (s *SearchService) Search(req domain.SearchRequest) (domain.SearchResult, error) {
	user := NewIngredientSet(req.Ingredients)
	query := strings.TrimSpace(req.Query)

	if user.Len() == 0 && query == "" {
		return domain.SearchResult{}, domain.ErrEmptyIngredients
	}

	sortBy, order := resolveSort(req.SortBy, req.SortOrder)
	opts := RankOptions{
		SortBy:          sortBy,
		SortOrder:       order,
		IncludeScores:   req.IncludeScores,
		IncludeAnalysis: true,
	}

	var results []domain.RankedRecipe
	switch {
	case query != "" && user.Len() > 0:
		hits := s.textSearch(query)
		candidates := make([]domain.Recipe, 0, len(hits))
		relevance := make(map[int]float64, len(hits))
		for _, h := range hits {
			relevance[h.ID] = h.Relevance
		}
		// keep catalog order for the stable tie-break
		for _, r := range s.catalog.All() {
			if _, ok := relevance[r.ID]; ok {
				candidates = append(candidates, r)
			}
		}
		results = s.rank(candidates, user, opts, relevance)
	case query != "":
		results = s.textSearch(query)
		if req.IncludeScores {
			for i := range results {
				s.attachScores(&results[i])
			}
		}
	default:
		results = s.rank(s.catalog.All(), user, opts, nil)
	}

	total := len(results)
	results = truncate(results, s.resolveLimit(req.Limit))

	s.logger.Info("recipe search",
		zap.String("query", query),
		zap.Int("ingredients", user.Len()),
		zap.String("sort_by", string(sortBy)),
		zap.String("sort_order", string(order)),
		zap.Int("total_matches", total),
	)

	return domain.SearchResult{
		Recipes: results,
		Criteria: domain.SearchCriteria{
			Query:        query,
			Ingredients:  user.Items(),
			SortBy:       sortBy,
			SortOrder:    order,
			TotalMatches: total,
		},
	}, nil
}

// List returns catalog recipes filtered by category and a name substring
func (s *SearchService) List(category, search string, limit int) []domain.Recipe {
	category = strings.TrimSpace(category)
	search = strings.ToLower(strings.TrimSpace(search))

	out := []domain.Recipe{}
	for _, r := range s.catalog.All() {
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Categories returns the distinct catalog categories
func (s *SearchService) Categories() []string {
	return s.catalog.Categories()
}

// Count returns the catalog size
func (s *SearchService) Count() int {
	return s.catalog.Len()
}

// RecipeDetails returns a recipe with its calorie estimate and scores
func (s *SearchService) RecipeDetails(id int) (domain.RecipeDetail, error) {
	recipe, err := s.catalog.Get(id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return domain.RecipeDetail{
		Recipe:            recipe,
		EstimatedCalories: s.scorer.EstimateCalories(recipe.Ingredients),
		Sustainability:    s.scorer.Sustainability(recipe.Ingredients),
		Health:            s.scorer.Health(recipe.Ingredients),
	}, nil
}

func (s *SearchService) attachScores(rr *domain.RankedRecipe) {
	sustainability := s.scorer.Sustainability(rr.Ingredients)
	health := s.scorer.Health(rr.Ingredients)
	rr.Sustainability = &sustainability
	rr.Health = &health
}

// resolveLimit applies the default and clamps to the maximum
func (s *SearchService) resolveLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func resolveSort(sortBy domain.SortKey, order domain.SortOrder) (domain.SortKey, domain.SortOrder) {
	switch sortBy {
	case domain.SortBySustainability, domain.SortByHealth:
	default:
		sortBy = domain.SortByMatch
	}
	if order != domain.SortAsc {
		order = domain.SortDesc
	}
	return sortBy, order
}

// sortRanked orders by the primary key, then the higher raw match count.
// The sort is stable, so remaining ties keep candidate order.
func sortRanked(ranked []domain.RankedRecipe, sortBy domain.SortKey, order domain.SortOrder) {
	primary := func(r domain.RankedRecipe) int {
		switch sortBy {
		case domain.SortBySustainability:
			if r.Sustainability != nil {
				return r.Sustainability.Score
			}
		case domain.SortByHealth:
			if r.Health != nil {
				return r.Health.Score
			}
		default:
			return r.Match.Percentage
		}
		return 0
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := primary(ranked[i]), primary(ranked[j])
		if pi != pj {
			if order == domain.SortAsc {
				return pi < pj
			}
			return pi > pj
		}
		return ranked[i].Match.Matches > ranked[j].Match.Matches
	})
}

// relevanceOf weighs keyword hits in the name, ingredients and category
func relevanceOf(recipe domain.Recipe, keywords []string) float64 {
	name := wordSet(recipe.Name)
	category := wordSet(recipe.Category)
	ingredients := make([]map[string]bool, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ingredients[i] = wordSet(ing)
	}

	var score float64
	for _, kw := range keywords {
		if name[kw] {
			score += nameWeight
		}
		for _, words := range ingredients {
			if words[kw] {
				score += ingredientWeight
				break
			}
		}
		if category[kw] {
			score += categoryWeight
		}
	}
	return score
}

// wordSet splits text into singular lower-case words
func wordSet(text string) map[string]bool {
	cleaned := punctuationRegex.ReplaceAllString(foldDiacritics(strings.ToLower(text)), " ")
	words := make(map[string]bool)
	for _, w := range strings.Fields(cleaned) {
		words[singularize(w)] = true
	}
	return words
}

func truncate(ranked []domain.RankedRecipe, limit int) []domain.RankedRecipe {
	if limit >= 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
