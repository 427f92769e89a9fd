package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsCollector_IndependentRegistries(t *testing.T) {
	// Two collectors must not collide on registration
	a := NewMetricsCollector(zap.NewNop())
	b := NewMetricsCollector(zap.NewNop())

	a.RecordHTTPRequest(http.MethodGet, "/api/recipes", 200, 10, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.httpRequestsTotal.WithLabelValues("GET", "/api/recipes", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.httpRequestsTotal.WithLabelValues("GET", "/api/recipes", "200")))
}

func TestMetricsCollector_RecordEventAndAI(t *testing.T) {
	m := NewMetricsCollector(zap.NewNop())

	m.RecordEvent(EventRecipeCreated)
	m.RecordEvent(EventRecipeCreated)
	m.RecordAIRequest("llama3-8b-8192", "success", 2*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.businessEvents.WithLabelValues(EventRecipeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequestsTotal.WithLabelValues("llama3-8b-8192", "success")))
}

func TestMetricsCollector_NilIsNoop(t *testing.T) {
	var m *MetricsCollector
	assert.NotPanics(t, func() {
		m.RecordEvent(EventUserRegistered)
		m.RecordHTTPRequest("GET", "/", 200, 0, time.Millisecond)
		m.RecordAIRequest("m", "error", time.Millisecond)
		m.InFlight(1)
	})
}

func TestMetricsCollector_Handler(t *testing.T) {
	m := NewMetricsCollector(zap.NewNop())
	m.RecordEvent(EventLoginSucceeded)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `recipebox_events_total{event="login_succeeded"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
