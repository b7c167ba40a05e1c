package config

import (
	"os"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Catalog: CatalogConfig{Source: "embedded"},
		Cache:   CacheConfig{Type: "memory"},
		Search:  SearchConfig{DefaultLimit: 10, MaxLimit: 50},
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Server.ShutdownTimeout != 10*time.Second {
			t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
		}
		if cfg.Catalog.Source != "embedded" {
			t.Errorf("Catalog.Source = %s, want embedded", cfg.Catalog.Source)
		}
		if cfg.LLM.BaseURL != "http://localhost:11434" || cfg.LLM.Model != "llama3.2:3b" {
			t.Errorf("LLM = %+v, want local ollama defaults", cfg.LLM)
		}
		if cfg.LLM.Timeout != 60*time.Second {
			t.Errorf("LLM.Timeout = %v, want 60s", cfg.LLM.Timeout)
		}
		if cfg.Nutrition.Enabled {
			t.Error("Nutrition.Enabled = true, want false")
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 720*time.Hour {
			t.Errorf("Cache.TTL = %v, want 720h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 50 {
			t.Errorf("Search = %+v, want 10/50", cfg.Search)
		}
		if cfg.Chat.HistoryWindow != 6 || cfg.Chat.CatalogSnippetSize != 5 {
			t.Errorf("Chat = %+v, want 6/5", cfg.Chat)
		}
		if cfg.Scoring.MaxTips != 4 {
			t.Errorf("Scoring.MaxTips = %d, want 4", cfg.Scoring.MaxTips)
		}
		if cfg.Matching.FuzzyThreshold != 0.8 {
			t.Errorf("Matching.FuzzyThreshold = %v, want 0.8", cfg.Matching.FuzzyThreshold)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Setenv("INSTADISH_SERVER_PORT", "9090")
		t.Setenv("INSTADISH_SERVER_ENVIRONMENT", "production")
		t.Setenv("INSTADISH_LLM_MODEL", "mistral")
		t.Setenv("INSTADISH_CACHE_TYPE", "redis")
		t.Setenv("INSTADISH_CACHE_REDIS_URL", "redis://localhost:6379")
		t.Setenv("INSTADISH_CACHE_TTL", "24h")
		t.Setenv("INSTADISH_RATELIMIT_PER_IP", "200")
		t.Setenv("INSTADISH_NUTRITION_ENABLED", "true")
		t.Setenv("INSTADISH_NUTRITION_CLIENT_ID", "id")
		t.Setenv("INSTADISH_NUTRITION_CLIENT_SECRET", "secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.LLM.Model != "mistral" {
			t.Errorf("LLM.Model = %s, want mistral", cfg.LLM.Model)
		}
		if cfg.Cache.Type != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache = %+v, want redis", cfg.Cache)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if !cfg.Nutrition.Enabled || cfg.Nutrition.ClientID != "id" {
			t.Errorf("Nutrition = %+v, want enabled with credentials", cfg.Nutrition)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		t.Setenv("INSTADISH_CACHE_TYPE", "invalid")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when nutrition credentials are missing", func(t *testing.T) {
		t.Setenv("INSTADISH_NUTRITION_ENABLED", "true")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for missing credentials")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	chdir := func(t *testing.T) {
		t.Helper()
		originalDir, _ := os.Getwd()
		t.Cleanup(func() { os.Chdir(originalDir) })
		os.Chdir(t.TempDir())
	}

	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdir(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		chdir(t)

		envContent := `
# Comment line
INSTADISH_TEST_VAR_1=value1
INSTADISH_TEST_VAR_2=value2
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Cleanup(func() {
			os.Unsetenv("INSTADISH_TEST_VAR_1")
			os.Unsetenv("INSTADISH_TEST_VAR_2")
		})

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("INSTADISH_TEST_VAR_1") != "value1" {
			t.Errorf("INSTADISH_TEST_VAR_1 = %s, want value1", os.Getenv("INSTADISH_TEST_VAR_1"))
		}
		if os.Getenv("INSTADISH_TEST_VAR_2") != "value2" {
			t.Errorf("INSTADISH_TEST_VAR_2 = %s, want value2", os.Getenv("INSTADISH_TEST_VAR_2"))
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdir(t)
		t.Setenv("INSTADISH_TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("INSTADISH_TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("INSTADISH_TEST_OVERRIDE") != "existing-value" {
			t.Errorf("INSTADISH_TEST_OVERRIDE = %s, want existing-value", os.Getenv("INSTADISH_TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("validates successfully with defaults", func(t *testing.T) {
		if err := validate(validConfig()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"invalid cache type", func(c *Config) { c.Cache.Type = "invalid-type" }, true},
		{"redis with URL", func(c *Config) { c.Cache = CacheConfig{Type: "redis", RedisURL: "redis://localhost:6379"} }, false},
		{"redis without URL", func(c *Config) { c.Cache.Type = "redis" }, true},
		{"unknown catalog source", func(c *Config) { c.Catalog.Source = "mongo" }, true},
		{"json catalog without path", func(c *Config) { c.Catalog.Source = "json" }, true},
		{"csv catalog with path", func(c *Config) { c.Catalog = CatalogConfig{Source: "csv", Path: "recipes.csv"} }, false},
		{"sqlite catalog without dsn", func(c *Config) { c.Catalog.Source = "sqlite" }, true},
		{"postgres catalog with dsn", func(c *Config) { c.Catalog = CatalogConfig{Source: "postgres", DSN: "host=db"} }, false},
		{"nutrition without secret", func(c *Config) { c.Nutrition = NutritionConfig{Enabled: true, ClientID: "id"} }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }, true},
		{"default limit above max", func(c *Config) { c.Search.DefaultLimit = 60 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := validate(cfg)
			if tc.wantErr && err == nil {
				t.Error("validate() error = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("validate() error = %v, want nil", err)
			}
		})
	}
}
