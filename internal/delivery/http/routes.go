package http

import (
	"github.com/gin-gonic/gin"
	"github.com/instadish/backend/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(BodySizeLimit(cfg.Server.MaxBodyBytes))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", handler.ListRecipes)
			recipes.GET("/categories", handler.Categories)
			recipes.GET("/:id", handler.GetRecipe)
			recipes.POST("/search", handler.SearchRecipes)
		}

		v1.POST("/sustainability/analyze", handler.AnalyzeSustainability)

		chat := v1.Group("/chat")
		{
			chat.POST("", handler.Chat)
			chat.GET("/status", handler.ChatStatus)
			chat.POST("/quick-questions", handler.QuickQuestions)
		}
	}

	return router
}
