package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_ObserveRequest(t *testing.T) {
	p := NewPrometheus()
	p.ObserveRequest("GET", "/api/v1/notes/:name", 200, 5*time.Millisecond)
	p.ObserveRequest("GET", "/api/v1/notes/:name", 200, 5*time.Millisecond)
	p.ObserveRequest("GET", "/api/v1/notes/:name", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/notes/:name", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/notes/:name", "404")))
}

func TestPrometheus_ObserveNoteMath(t *testing.T) {
	p := NewPrometheus()
	p.ObserveNoteMath("ok", 0)
	p.ObserveNoteMath("skipped", 2)
	p.ObserveNoteMath("rejected", 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.NoteMathEvaluations.WithLabelValues("skipped")))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.NoteMathSkipped))
}

func TestPrometheus_NilIsNoop(t *testing.T) {
	var p *Prometheus
	p.ObserveRequest("GET", "/", 200, time.Millisecond)
	p.ObserveNoteMath("ok", 1)
}

func TestPrometheus_Handler(t *testing.T) {
	p := NewPrometheus()
	p.ObserveNoteMath("ok", 0)

	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "musictheory_notemath_evaluations_total")
}
