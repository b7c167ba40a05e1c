package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HealthServiceConfig holds configuration for the health service
type HealthServiceConfig struct {
	CacheTTL   time.Duration
	MaxLookups int
	Timeout    time.Duration // bound on all lookups of one Assess call
}

// HealthService scores ingredient sets from nutrition API data, falling back to the
// keyword heuristic when the API is not configured or every lookup fails.
type HealthService struct {
	scorer     *ScoringService
	cache      domain.CacheRepository
	client     domain.NutritionClient
	cacheTTL   time.Duration
	maxLookups int
	timeout    time.Duration
	logger     *zap.Logger
}

// NewHealthService creates a health service. client may be nil, in which case only the
// heuristic is used.
func NewHealthService(
	scorer *ScoringService,
	cache domain.CacheRepository,
	client domain.NutritionClient,
	config HealthServiceConfig,
	logger *zap.Logger,
) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}

	maxLookups := config.MaxLookups
	if maxLookups <= 0 {
		maxLookups = 8
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HealthService{
		scorer:     scorer,
		cache:      cache,
		client:     client,
		cacheTTL:   cacheTTL,
		maxLookups: maxLookups,
		timeout:    timeout,
		logger:     logger,
	}
}

// Assess returns the health result for an ingredient set.
// Flow: heuristic -> lookups (cache -> API -> cache) -> nutrition score, or degraded heuristic
func (s *HealthService) Assess(ctx context.Context, ingredients []string) domain.HealthResult {
	heuristic := s.scorer.Health(ingredients)
	if s.client == nil {
		return heuristic
	}

	items := NewIngredientSet(ingredients).items
	if len(items) == 0 {
		return heuristic
	}
	if len(items) > s.maxLookups {
		items = items[:s.maxLookups]
	}

	results := s.lookupAll(ctx, items)

	var total domain.NutritionFacts
	found := 0
	for _, facts := range results {
		if facts == nil {
			continue
		}
		total.Add(*facts)
		found++
	}

	if found == 0 {
		heuristic.Degraded = true
		return heuristic
	}

	score := clampScore(nutritionScore(total))
	grade, label := s.scorer.Grade(score)
	total.FoodName = fmt.Sprintf("%d of %d ingredients", found, len(items))

	return domain.HealthResult{
		Score:     score,
		Grade:     grade,
		Label:     label,
		Tips:      heuristic.Tips,
		Source:    domain.HealthSourceNutritionAPI,
		Nutrition: &total,
	}
}

// lookupAll runs the lookups under s.timeout. A lookup still running at the deadline
// counts as failed, even when the client ignores ctx.
func (s *HealthService) lookupAll(ctx context.Context, items []string) []*domain.NutritionFacts {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var mu sync.Mutex
	results := make([]*domain.NutritionFacts, len(items))
	closed := false

	var g errgroup.Group
	g.SetLimit(4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, ing := range items {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				facts, err := s.lookup(ctx, ing)
				if err != nil {
					s.logger.Warn("nutrition lookup failed", zap.String("ingredient", ing), zap.Error(err))
					return nil
				}
				mu.Lock()
				if !closed {
					results[i] = facts
				}
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("nutrition lookups timed out", zap.Duration("timeout", s.timeout), zap.Error(ctx.Err()))
	}

	mu.Lock()
	defer mu.Unlock()
	closed = true
	return append([]*domain.NutritionFacts(nil), results...)
}

// lookup fetches one ingredient's facts, cache first
func (s *HealthService) lookup(ctx context.Context, ingredient string) (*domain.NutritionFacts, error) {
	cacheKey := "nutrition:" + strings.ToLower(strings.TrimSpace(ingredient))

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		return cached, nil
	}

	facts, err := s.client.SearchFood(ctx, ingredient)
	if err != nil {
		return nil, err
	}
	if facts == nil {
		return nil, domain.ErrNutritionNotFound
	}

	if err := s.setInCache(ctx, cacheKey, facts); err != nil {
		s.logger.Debug("nutrition cache write failed", zap.String("key", cacheKey), zap.Error(err))
	}

	return facts, nil
}

// getFromCache retrieves nutrition facts from cache. Both cache backends hand back decoded
// JSON, so the value is re-encoded into the typed struct.
func (s *HealthService) getFromCache(ctx context.Context, key string) (*domain.NutritionFacts, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if facts, ok := value.(*domain.NutritionFacts); ok {
		return facts, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}
	var facts domain.NutritionFacts
	if err := json.Unmarshal(raw, &facts); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &facts, nil
}

// setInCache stores nutrition facts in cache
func (s *HealthService) setInCache(ctx context.Context, key string, facts *domain.NutritionFacts) error {
	if s.cache == nil {
		return errors.New("no cache configured")
	}
	stored := *facts
	stored.CachedAt = time.Now()
	return s.cache.Set(ctx, key, &stored, s.cacheTTL)
}

// nutritionScore weighs nutrient density, macro balance and health risk
func nutritionScore(n domain.NutritionFacts) float64 {
	return nutrientDensity(n)*0.4 + macroBalance(n)*0.3 + healthRisk(n)*0.3
}

func nutrientDensity(n domain.NutritionFacts) float64 {
	if n.Calories <= 0 {
		return 0
	}
	proteinBonus := math.Min(20, n.Protein*4/n.Calories*100*0.5)
	fiberBonus := math.Min(20, n.Fiber*2/n.Calories*100*0.5)
	return math.Min(100, math.Max(0, 60+proteinBonus+fiberBonus))
}

// macroBalance compares calories from each macro against a 25/45/30 split
func macroBalance(n domain.NutritionFacts) float64 {
	if n.Calories <= 0 {
		return 0
	}
	component := func(actual, share float64) float64 {
		ideal := n.Calories * share
		return 100 - math.Abs(actual-ideal)/ideal*100
	}
	score := (component(n.Protein*4, 0.25) + component(n.Carbohydrate*4, 0.45) + component(n.Fat*9, 0.30)) / 3
	return math.Max(0, score)
}

// healthRisk starts at 100 and subtracts capped penalties for sodium, sugar and fat
func healthRisk(n domain.NutritionFacts) float64 {
	risk := 100.0
	if n.Sodium > 800 {
		risk -= math.Min(20, (n.Sodium-800)/15)
	}
	if n.Sugar > 20 {
		risk -= math.Min(15, (n.Sugar-20)*1.5)
	}
	if n.Fat > 8 {
		risk -= math.Min(15, (n.Fat-8)*2)
	}
	return math.Max(0, risk)
}
