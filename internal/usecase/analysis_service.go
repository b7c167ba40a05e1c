package usecase

import (
	"context"

	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalysisService produces the combined sustainability and health view of an ingredient set
type AnalysisService struct {
	scorer *ScoringService
	health *HealthService
	logger *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(scorer *ScoringService, health *HealthService, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{scorer: scorer, health: health, logger: logger}
}

// Analyze scores the normalized set. An empty set is a validation error.
func (s *AnalysisService) Analyze(ctx context.Context, ingredients []string) (domain.IngredientAnalysis, error) {
	items := NewIngredientSet(ingredients).Items()
	if len(items) == 0 {
		return domain.IngredientAnalysis{}, domain.ErrEmptyIngredients
	}

	var (
		sustainability domain.SustainabilityResult
		health         domain.HealthResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sustainability = s.scorer.Sustainability(items)
		return nil
	})
	g.Go(func() error {
		health = s.health.Assess(gctx, items)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.IngredientAnalysis{}, err
	}

	s.logger.Info("ingredients analyzed",
		zap.Int("ingredients", len(items)),
		zap.Int("sustainability", sustainability.Score),
		zap.Int("health", health.Score),
		zap.String("health_source", health.Source),
		zap.Bool("degraded", health.Degraded),
	)

	return domain.IngredientAnalysis{
		Ingredients:    items,
		Sustainability: sustainability,
		Health:         health,
	}, nil
}
