package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/instadish/backend/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Nutrition NutritionConfig `mapstructure:"nutrition"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Search    SearchConfig    `mapstructure:"search"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Matching  MatchingConfig  `mapstructure:"matching"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// CatalogConfig selects where recipes are loaded from
type CatalogConfig struct {
	Source string `mapstructure:"source"` // embedded, json, csv, sqlite, postgres
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// LLMConfig holds the local language model configuration
type LLMConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	TopP        float64       `mapstructure:"top_p"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// NutritionConfig holds FatSecret API configuration
type NutritionConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	ClientID          string        `mapstructure:"client_id"`
	ClientSecret      string        `mapstructure:"client_secret"`
	BaseURL           string        `mapstructure:"base_url"`
	TokenURL          string        `mapstructure:"token_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxLookups        int           `mapstructure:"max_lookups"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// SearchConfig holds recipe search limits
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// ChatConfig holds chat prompt settings
type ChatConfig struct {
	HistoryWindow      int `mapstructure:"history_window"`
	CatalogSnippetSize int `mapstructure:"catalog_snippet_size"`
	SuggestionLimit    int `mapstructure:"suggestion_limit"`
}

// ScoringConfig points at an optional rules override
type ScoringConfig struct {
	RulesFile string `mapstructure:"rules_file"`
	MaxTips   int    `mapstructure:"max_tips"`
}

// MatchingConfig holds extended match settings
type MatchingConfig struct {
	KnowledgeFile    string  `mapstructure:"knowledge_file"`
	FuzzyThreshold   float64 `mapstructure:"fuzzy_threshold"`
	MaxSubstitutions int     `mapstructure:"max_substitutions"`
}

var catalogSources = map[string]bool{
	"embedded": true, "json": true, "csv": true, "sqlite": true, "postgres": true,
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/instadish/")

	// Environment variable settings
	v.SetEnvPrefix("INSTADISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("catalog.source", "embedded")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.dsn", "")

	// Ollama defaults
	v.SetDefault("llm.enabled", true)
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "llama3.2:3b")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.top_p", 0.9)
	v.SetDefault("llm.max_tokens", 500)
	v.SetDefault("llm.timeout", "60s")

	// FatSecret defaults
	v.SetDefault("nutrition.enabled", false)
	v.SetDefault("nutrition.client_id", "")
	v.SetDefault("nutrition.client_secret", "")
	v.SetDefault("nutrition.base_url", "https://platform.fatsecret.com/rest/server.api")
	v.SetDefault("nutrition.token_url", "https://oauth.fatsecret.com/connect/token")
	v.SetDefault("nutrition.timeout", "10s")
	v.SetDefault("nutrition.max_lookups", 8)
	v.SetDefault("nutrition.requests_per_second", 5)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "720h") // 30 days

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("search.default_limit", 10)
	v.SetDefault("search.max_limit", 50)

	v.SetDefault("chat.history_window", 6)
	v.SetDefault("chat.catalog_snippet_size", 5)
	v.SetDefault("chat.suggestion_limit", 3)

	v.SetDefault("scoring.rules_file", "")
	v.SetDefault("scoring.max_tips", 4)

	v.SetDefault("matching.knowledge_file", "")
	v.SetDefault("matching.fuzzy_threshold", 0.8)
	v.SetDefault("matching.max_substitutions", 5)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if !catalogSources[config.Catalog.Source] {
		return fmt.Errorf("catalog source must be one of embedded, json, csv, sqlite, postgres, got: %s", config.Catalog.Source)
	}

	switch config.Catalog.Source {
	case "json", "csv":
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required for source '%s'", config.Catalog.Source)
		}
	case "sqlite", "postgres":
		if config.Catalog.DSN == "" {
			return fmt.Errorf("catalog DSN is required for source '%s'", config.Catalog.Source)
		}
	}

	if config.Nutrition.Enabled && (config.Nutrition.ClientID == "" || config.Nutrition.ClientSecret == "") {
		return fmt.Errorf("FatSecret credentials are required when nutrition is enabled (set INSTADISH_NUTRITION_CLIENT_ID and INSTADISH_NUTRITION_CLIENT_SECRET)")
	}

	if _, err := logger.ParseLevel(config.Log.Level); err != nil {
		return err
	}

	if config.Search.MaxLimit <= 0 || config.Search.DefaultLimit <= 0 || config.Search.DefaultLimit > config.Search.MaxLimit {
		return fmt.Errorf("search limits must satisfy 0 < default_limit <= max_limit")
	}

	return nil
}
