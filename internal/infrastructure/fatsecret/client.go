package fatsecret

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://platform.fatsecret.com/rest/server.api"
	defaultTokenURL = "https://oauth.fatsecret.com/connect/token"
	maxAttempts     = 3
	tokenLeeway     = 60 * time.Second
)

// Config holds FatSecret Platform API credentials and limits
type Config struct {
	ClientID          string
	ClientSecret      string
	BaseURL           string
	TokenURL          string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client looks up foods on the FatSecret Platform API using OAuth 2.0 client credentials
type Client struct {
	httpClient  *http.Client
	config      Config
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	debug       bool
	backoff     func(attempt int) time.Duration
	now         func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a new FatSecret client
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultTokenURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 5
	}

	burst := int(config.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout},
		config:      config,
		rateLimiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst),
		logger:      logger,
		backoff:     exponentialBackoff,
		now:         time.Now,
	}
}

// SetDebug enables logging of raw response bodies
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// SearchFood resolves a free-text query to the first matching food's first serving
func (c *Client) SearchFood(ctx context.Context, query string) (*domain.NutritionFacts, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrNutritionNotFound
	}

	ref, err := c.searchFoods(ctx, query)
	if err != nil {
		return nil, err
	}

	food, err := c.getFood(ctx, ref.FoodID)
	if err != nil {
		return nil, err
	}

	facts, err := MapToNutritionFacts(food)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("food resolved",
		zap.String("query", query),
		zap.String("food_id", facts.FoodID),
		zap.String("food_name", facts.FoodName),
	)
	return facts, nil
}

type apiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type searchResponse struct {
	Foods struct {
		Food json.RawMessage `json:"food"`
	} `json:"foods"`
}

type foodResponse struct {
	Food struct {
		FoodID   string `json:"food_id"`
		FoodName string `json:"food_name"`
		Servings struct {
			Serving json.RawMessage `json:"serving"`
		} `json:"servings"`
	} `json:"food"`
}

func (c *Client) searchFoods(ctx context.Context, query string) (*domain.FatSecretFoodRef, error) {
	params := url.Values{}
	params.Set("method", "foods.search")
	params.Set("search_expression", query)
	params.Set("max_results", "1")
	params.Set("format", "json")

	body, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search response: %v", domain.ErrNutritionAPIFailure, err)
	}

	refs, err := oneOrMany[domain.FatSecretFoodRef](resp.Foods.Food)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode foods: %v", domain.ErrNutritionAPIFailure, err)
	}
	if len(refs) == 0 || refs[0].FoodID == "" {
		return nil, domain.ErrNutritionNotFound
	}
	return &refs[0], nil
}

func (c *Client) getFood(ctx context.Context, foodID string) (*domain.FatSecretFood, error) {
	params := url.Values{}
	params.Set("method", "food.get.v2")
	params.Set("food_id", foodID)
	params.Set("format", "json")

	body, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp foodResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode food response: %v", domain.ErrNutritionAPIFailure, err)
	}

	servings, err := oneOrMany[domain.FatSecretServing](resp.Food.Servings.Serving)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode servings: %v", domain.ErrNutritionAPIFailure, err)
	}

	return &domain.FatSecretFood{
		FoodID:   resp.Food.FoodID,
		FoodName: resp.Food.FoodName,
		Servings: servings,
	}, nil
}

// call performs a rate-limited, authorized GET with retries on transient failures
func (c *Client) call(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.config.BaseURL + "?" + params.Encode()
	method := params.Get("method")

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		token, err := c.accessToken(ctx)
		if err != nil {
			lastErr = err
			c.logger.Warn("token request failed", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		status, body, err := c.get(ctx, reqURL, token)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrNutritionAPIFailure, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrNutritionAPIFailure, err)
			c.logger.Warn("request failed", zap.String("method", method), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		if c.debug {
			c.logger.Debug("response body", zap.String("method", method), zap.ByteString("body", body))
		}

		switch {
		case status == http.StatusUnauthorized:
			c.invalidateToken()
			lastErr = fmt.Errorf("%w: status %d", domain.ErrNutritionAPIFailure, status)
			continue
		case status == http.StatusTooManyRequests || status >= 500:
			lastErr = fmt.Errorf("%w: status %d", domain.ErrNutritionAPIFailure, status)
			c.logger.Warn("retryable status", zap.String("method", method), zap.Int("status", status), zap.Int("attempt", attempt))
			continue
		case status != http.StatusOK:
			return nil, fmt.Errorf("%w: status %d", domain.ErrNutritionAPIFailure, status)
		}

		var envelope apiError
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
			return nil, fmt.Errorf("%w: api error %d: %s", domain.ErrNutritionAPIFailure, envelope.Error.Code, envelope.Error.Message)
		}
		return body, nil
	}

	return nil, lastErr
}

func (c *Client) get(ctx context.Context, reqURL, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "InstaDish/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// accessToken returns the cached token, fetching a new one when it is within a minute of expiry
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "basic")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", domain.ErrNutritionAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: token status %d: %s", domain.ErrNutritionAPIFailure, resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: failed to decode token: %v", domain.ErrNutritionAPIFailure, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrNutritionAPIFailure)
	}

	c.token = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenLeeway)
	c.logger.Info("access token obtained", zap.Int("expires_in", tok.ExpiresIn))
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// oneOrMany decodes a FatSecret field that is an object for one result and an array for several
func oneOrMany[T any](raw json.RawMessage) ([]T, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var many []T
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, err
		}
		return many, nil
	}
	var one T
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ domain.NutritionClient = (*Client)(nil)
