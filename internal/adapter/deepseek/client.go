// Package deepseek implements the chat completion capability against the
// DeepSeek OpenAI-compatible API.
package deepseek

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
)

// Client implements domain.Completer. Calls go through a circuit breaker so
// a flapping API fails fast instead of burning every translation round on
// timeouts.
type Client struct {
	api     *openai.Client
	model   string
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewClient creates a DeepSeek chat completion client.
func NewClient(apiKey, baseURL, model string, timeout time.Duration, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "deepseek",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			logger.Warn("deepseek breaker state change", "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   model,
		breaker: breaker,
		logger:  logger,
	}
}

// Complete sends one chat completion request and returns the assistant text.
// Provider errors surface with their status code and detail text.
func (c *Client) Complete(ctx context.Context, messages []domain.Message, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	out, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("completion returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("deepseek API error: status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	text, ok := out.(string)
	if !ok {
		return "", errors.New("unexpected completion result type")
	}
	return strings.TrimSpace(text), nil
}
