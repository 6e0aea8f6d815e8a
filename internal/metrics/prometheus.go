package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus holds the service's Prometheus collectors on a private registry
type Prometheus struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	NoteMathEvaluations *prometheus.CounterVec
	NoteMathSkipped     prometheus.Counter
}

// NewPrometheus registers all collectors on a fresh registry
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musictheory_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "musictheory_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		NoteMathEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musictheory_notemath_evaluations_total",
				Help: "Note-math expressions evaluated, by outcome",
			},
			[]string{"outcome"},
		),
		NoteMathSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "musictheory_notemath_skipped_tokens_total",
				Help: "Tokens ignored by the lenient note-math evaluator",
			},
		),
	}

	p.registry.MustRegister(
		p.HTTPRequestsTotal,
		p.HTTPRequestDuration,
		p.NoteMathEvaluations,
		p.NoteMathSkipped,
		collectors.NewGoCollector(),
	)
	return p
}

// ObserveRequest records one finished HTTP request
func (p *Prometheus) ObserveRequest(method, route string, status int, duration time.Duration) {
	if p == nil {
		return
	}
	p.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveNoteMath records one evaluation. outcome is "ok", "skipped" or "rejected".
func (p *Prometheus) ObserveNoteMath(outcome string, skipped int) {
	if p == nil {
		return
	}
	p.NoteMathEvaluations.WithLabelValues(outcome).Inc()
	if skipped > 0 {
		p.NoteMathSkipped.Add(float64(skipped))
	}
}

// Handler serves the registry in the Prometheus exposition format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
