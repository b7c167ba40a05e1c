package catalog

import (
	"context"
	"fmt"

	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
)

// Sources
const (
	SourceEmbedded = "embedded"
	SourceJSON     = "json"
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// NewSource builds the RecipeSource for a configured source kind
func NewSource(kind, path, dsn string) (domain.RecipeSource, error) {
	switch kind {
	case "", SourceEmbedded:
		return EmbeddedSource{}, nil
	case SourceJSON:
		return JSONSource{Path: path}, nil
	case SourceCSV:
		return CSVSource{Path: path}, nil
	case SourceSQLite, SourcePostgres:
		db, err := OpenDatabase(kind, dsn)
		if err != nil {
			return nil, err
		}
		return NewGormSource(db), nil
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", kind)
	}
}

// Load reads every recipe from src and builds the read-only catalog
func Load(ctx context.Context, src domain.RecipeSource, logger *zap.Logger) (*domain.Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	recipes, err := src.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}

	c, err := domain.NewCatalog(recipes)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	logger.Info("catalog loaded",
		zap.Int("recipes", c.Len()),
		zap.Strings("categories", c.Categories()),
	)
	return c, nil
}
