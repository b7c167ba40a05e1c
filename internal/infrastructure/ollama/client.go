package ollama

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
)

// Config holds generation settings for the Ollama HTTP API
type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
	Timeout     time.Duration
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is a domain.CompletionClient backed by a local Ollama server
type Client struct {
	http   *resty.Client
	config Config
	logger *zap.Logger
}

// NewClient creates an Ollama client
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(config.BaseURL, "/")).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "InstaDish/1.0")

	return &Client{
		http:   httpClient,
		config: config,
		logger: logger,
	}
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.config.Model
}

// Generate runs a single non-streaming completion
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.config.Temperature,
			TopP:        c.config.TopP,
			NumPredict:  c.config.MaxTokens,
		},
	}

	var out generateResponse
	var apiErr errorResponse
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/generate")
	if err != nil {
		c.logger.Warn("generate request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", classify(err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("generate returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("error", apiErr.Error),
		)
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrCompletionUnavailable, resp.StatusCode(), apiErr.Error)
	}

	c.logger.Debug("generate completed",
		zap.String("model", c.config.Model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(out.Response)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out.Response, nil
}

// Ping checks the tags endpoint
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return classify(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrCompletionUnavailable, resp.StatusCode())
	}
	return nil
}

// classify maps transport errors onto the completion sentinels
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrCompletionTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrCompletionTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrCompletionUnavailable, err)
}
