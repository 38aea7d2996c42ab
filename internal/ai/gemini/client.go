package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hireflow/internal/config"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"
	maxAttempts  = 3
)

var ErrEmptyResponse = errors.New("gemini api returned empty response")

var sleep = time.Sleep

type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client sends single-turn text prompts to Gemini, throttled to the configured
// requests per minute and retried on temporary API errors.
type Client struct {
	models    contentModel
	modelName string
	limiter   *rate.Limiter
	timeout   time.Duration
	log       *zap.Logger
}

func NewClient(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(client.Models, cfg, log), nil
}

func newClient(models contentModel, cfg config.GeminiConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &Client{
		models:    models,
		modelName: model,
		limiter:   rate.NewLimiter(limit, 1),
		timeout:   cfg.Timeout,
		log:       log,
	}
}

// GenerateContent sends the prompt and returns the concatenated text parts.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		out, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isTemporary(err) || attempt == maxAttempts {
			break
		}

		c.log.Warn("gemini_retry", zap.Int("attempt", attempt), zap.Error(err))
		sleep(time.Duration(attempt) * time.Second)
	}
	return "", lastErr
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := c.models.GenerateContent(callCtx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	out := responseText(resp)
	if out == "" {
		return "", ErrEmptyResponse
	}

	c.log.Debug("gemini_response",
		zap.String("model", c.modelName),
		zap.Int("chars", len(out)),
		zap.Duration("duration", time.Since(started)),
	)
	return out, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

func isTemporary(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
