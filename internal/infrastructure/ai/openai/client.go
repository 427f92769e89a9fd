// Package openai provides a client for OpenAI-compatible chat-completion endpoints
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	serviceName = "chat-completion"
	tracerName  = "github.com/alchemorsel/recipebox/internal/infrastructure/ai/openai"
	// maxResponseBytes bounds how much of an upstream body is read
	maxResponseBytes = 4 << 20
)

// MetricsRecorder observes completed upstream calls
type MetricsRecorder interface {
	RecordAIRequest(model, status string, duration time.Duration)
}

// Client calls the chat-completion endpoint
type Client struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
	metrics  MetricsRecorder
	logger   *zap.Logger
}

// NewClient creates a new chat-completion client. metrics may be nil.
func NewClient(cfg config.AIConfig, metrics MetricsRecorder, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	if cfg.APIKey == "" {
		logger.Warn("AI API key not configured; ask-ai requests will be rejected upstream")
	}

	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:    cfg.Model,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		metrics: metrics,
		logger:  logger.Named("openai"),
	}
}

// ChatCompletionRequest is the request body
type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse is the subset of the response body that is read
type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Complete sends prompt as a single user message and returns choices[0].message.content.
// A non-2xx answer is returned as *outbound.UpstreamError carrying the raw body.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "chat.completions",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("ai.model", c.model),
			attribute.Int("ai.prompt_bytes", len(prompt)),
		),
	)
	defer span.End()

	start := time.Now()

	content, err := c.complete(ctx, prompt)

	status := requestStatus(err)
	span.SetAttributes(attribute.String("ai.status", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}

	if c.metrics != nil {
		c.metrics.RecordAIRequest(c.model, status, time.Since(start))
	}

	return content, err
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode chat request").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperrors.NewInternalError("failed to create chat request").WithCause(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperrors.NewExternalServiceError(serviceName, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Chat completion endpoint returned an error",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(body)),
		)
		return "", &outbound.UpstreamError{
			StatusCode:  resp.StatusCode,
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", apperrors.NewExternalServiceError(serviceName, fmt.Errorf("failed to decode response: %w", err))
	}

	if len(chatResp.Choices) == 0 {
		return "", apperrors.NewExternalServiceError(serviceName, fmt.Errorf("no response choices returned"))
	}

	c.logger.Info("Chat completion succeeded",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
		zap.Int("total_tokens", chatResp.Usage.TotalTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// requestStatus labels an outcome for metrics: success, the upstream status code, or error
func requestStatus(err error) string {
	if err == nil {
		return "success"
	}
	var upstream *outbound.UpstreamError
	if errors.As(err, &upstream) {
		return fmt.Sprintf("%d", upstream.StatusCode)
	}
	return "error"
}
