// Command seed copies a recipe catalog into a sqlite or postgres database so the server
// can run with catalog.source set to that database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/instadish/backend/internal/infrastructure/catalog"
	"github.com/instadish/backend/internal/logger"
	"go.uber.org/zap"
)

func main() {
	source := flag.String("source", catalog.SourceEmbedded, "recipe source: embedded, json or csv")
	path := flag.String("path", "", "recipe file for json and csv sources")
	driver := flag.String("driver", catalog.SourceSQLite, "target database: sqlite or postgres")
	dsn := flag.String("dsn", "instadish.db", "target database DSN")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	zapLogger, err := logger.New(*logLevel, "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := catalog.NewSource(*source, *path, "")
	if err != nil {
		zapLogger.Fatal("invalid source", zap.Error(err))
	}
	recipes, err := src.LoadRecipes(ctx)
	if err != nil {
		zapLogger.Fatal("failed to read recipes", zap.String("source", *source), zap.Error(err))
	}

	db, err := catalog.OpenDatabase(*driver, *dsn)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.String("driver", *driver), zap.Error(err))
	}

	n, err := catalog.Seed(ctx, db, recipes)
	if err != nil {
		zapLogger.Fatal("seed failed", zap.Error(err))
	}
	zapLogger.Info("catalog seeded",
		zap.Int("recipes", n),
		zap.String("source", *source),
		zap.String("driver", *driver),
	)
}
