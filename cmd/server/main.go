package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/instadish/backend/config"
	httpDelivery "github.com/instadish/backend/internal/delivery/http"
	"github.com/instadish/backend/internal/domain"
	"github.com/instadish/backend/internal/infrastructure/cache"
	"github.com/instadish/backend/internal/infrastructure/catalog"
	"github.com/instadish/backend/internal/infrastructure/fatsecret"
	"github.com/instadish/backend/internal/infrastructure/ollama"
	"github.com/instadish/backend/internal/infrastructure/rules"
	"github.com/instadish/backend/internal/logger"
	"github.com/instadish/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting InstaDish backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("cache_type", cfg.Cache.Type),
	)

	// Catalog
	source, err := catalog.NewSource(cfg.Catalog.Source, cfg.Catalog.Path, cfg.Catalog.DSN)
	if err != nil {
		return fmt.Errorf("catalog source: %w", err)
	}
	recipes, err := catalog.Load(ctx, source, logger.Named("catalog"))
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	// Scoring tables and ingredient knowledge
	scoringRules, err := rules.LoadScoringRules(cfg.Scoring.RulesFile, usecase.DefaultScoringRules())
	if err != nil {
		return err
	}
	if cfg.Scoring.MaxTips > 0 {
		scoringRules.MaxTips = cfg.Scoring.MaxTips
	}
	knowledge, err := rules.LoadKnowledge(cfg.Matching.KnowledgeFile, usecase.DefaultIngredientKnowledge())
	if err != nil {
		return err
	}

	// Cache
	var store domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "instadish:")
		if err != nil {
			return err
		}
		defer redisCache.Close()
		store = redisCache
	default:
		memoryCache := cache.NewMemoryCache()
		defer memoryCache.Close()
		store = memoryCache
	}
	logger.Info("cache ready", zap.String("type", cfg.Cache.Type), zap.Duration("ttl", cfg.Cache.TTL))

	// External clients stay nil interfaces when disabled
	var completion domain.CompletionClient
	if cfg.LLM.Enabled {
		completion = ollama.NewClient(ollama.Config{
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		}, logger.Named("ollama"))
		logger.Info("language model configured", zap.String("base_url", cfg.LLM.BaseURL), zap.String("model", cfg.LLM.Model))
	} else {
		logger.Warn("language model disabled, chat replies will be degraded")
	}

	var nutrition domain.NutritionClient
	if cfg.Nutrition.Enabled {
		client := fatsecret.NewClient(fatsecret.Config{
			ClientID:          cfg.Nutrition.ClientID,
			ClientSecret:      cfg.Nutrition.ClientSecret,
			BaseURL:           cfg.Nutrition.BaseURL,
			TokenURL:          cfg.Nutrition.TokenURL,
			Timeout:           cfg.Nutrition.Timeout,
			RequestsPerSecond: cfg.Nutrition.RequestsPerSecond,
		}, logger.Named("fatsecret"))
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		nutrition = client
		logger.Info("nutrition API configured", zap.String("base_url", cfg.Nutrition.BaseURL))
	} else {
		logger.Info("nutrition API disabled, health scores use keyword heuristics")
	}

	// Usecases
	scorer := usecase.NewScoringService(scoringRules)
	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		Knowledge:           knowledge,
		EnableFuzzyMatching: true,
		FuzzyThreshold:      cfg.Matching.FuzzyThreshold,
		MaxSubstitutions:    cfg.Matching.MaxSubstitutions,
	}, logger.Named("matching"))
	search := usecase.NewSearchService(
		recipes,
		matcher,
		scorer,
		usecase.NewQueryPreprocessor(logger.Named("query")),
		usecase.SearchConfig{
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
		},
		logger.Named("search"),
	)
	health := usecase.NewHealthService(scorer, store, nutrition, usecase.HealthServiceConfig{
		CacheTTL:   cfg.Cache.TTL,
		MaxLookups: cfg.Nutrition.MaxLookups,
		Timeout:    cfg.Nutrition.Timeout,
	}, logger.Named("health"))
	analysis := usecase.NewAnalysisService(scorer, health, logger.Named("analysis"))
	chat := usecase.NewChatService(recipes, search, completion, usecase.ChatConfig{
		HistoryWindow:      cfg.Chat.HistoryWindow,
		CatalogSnippetSize: cfg.Chat.CatalogSnippetSize,
		SuggestionLimit:    cfg.Chat.SuggestionLimit,
		Timeout:            cfg.LLM.Timeout,
	}, logger.Named("chat"))

	handler := httpDelivery.NewHandler(search, analysis, chat, logger.Named("http"))
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
