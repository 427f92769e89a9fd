package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alchemorsel/recipebox/internal/infrastructure/config"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zaptest"
)

type recordedCall struct {
	model  string
	status string
}

type fakeMetrics struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeMetrics) RecordAIRequest(model, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{model: model, status: status})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeMetrics) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	metrics := &fakeMetrics{}
	client := NewClient(config.AIConfig{
		BaseURL: server.URL + "/v1/",
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, metrics, zaptest.NewLogger(t))
	return client, metrics
}

func TestClient_Complete(t *testing.T) {
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "Which soup?", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Tomato Soup."}}],"usage":{"total_tokens":12}}`))
	})

	answer, err := client.Complete(context.Background(), "Which soup?")

	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup.", answer)
	assert.Equal(t, []recordedCall{{model: "test-model", status: "success"}}, metrics.calls)
}

func TestClient_Complete_NonSuccessIsRelayed(t *testing.T) {
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})

	_, err := client.Complete(context.Background(), "q")

	var upstream *outbound.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.JSONEq(t, `{"error":{"message":"bad key"}}`, string(upstream.Body))
	assert.Equal(t, "application/json", upstream.ContentType)
	assert.Equal(t, "401", metrics.calls[0].status)
}

func TestRequestStatus(t *testing.T) {
	upstream := &outbound.UpstreamError{StatusCode: http.StatusTooManyRequests}

	assert.Equal(t, "success", requestStatus(nil))
	assert.Equal(t, "429", requestStatus(upstream))
	assert.Equal(t, "429", requestStatus(fmt.Errorf("chat completion: %w", upstream)))
	assert.Equal(t, "error", requestStatus(errors.New("dial tcp: refused")))
}

func TestClient_Complete_RecordsClientSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "q")
	require.Error(t, err)

	var span sdktrace.ReadOnlySpan
	for _, ended := range recorder.Ended() {
		if ended.Name() == "chat.completions" {
			span = ended
		}
	}
	require.NotNil(t, span)
	assert.Equal(t, trace.SpanKindClient, span.SpanKind())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String("ai.model", "test-model"))
	assert.Contains(t, span.Attributes(), attribute.String("ai.status", "429"))
}

func TestClient_Complete_MalformedSuccess(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "InvalidJSON", body: `not json`},
		{name: "NoChoices", body: `{"choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Complete(context.Background(), "q")

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)
			assert.Equal(t, http.StatusBadGateway, appErr.StatusCode())
			assert.Equal(t, "error", metrics.calls[0].status)
		})
	}
}

func TestClient_Complete_Unreachable(t *testing.T) {
	client := NewClient(config.AIConfig{BaseURL: "http://127.0.0.1:1", Model: "m"}, nil, zaptest.NewLogger(t))

	_, err := client.Complete(context.Background(), "q")

	assert.True(t, apperrors.Is(err, apperrors.CodeExternalServiceError))
}
