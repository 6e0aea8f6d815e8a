package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Spans are dropped by the SDK when Sentry is not configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordNoteMathEvaluation records an evaluator call as a child span
func (m *SentryMetrics) RecordNoteMathEvaluation(ctx context.Context, expression string, applied, skipped int, failed bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "notemath.evaluate")
	defer span.Finish()

	span.SetTag("skipped", fmt.Sprintf("%t", skipped > 0))
	span.SetData("expression", expression)
	span.SetData("applied_steps", applied)
	span.SetData("skipped_tokens", skipped)

	if failed {
		span.Status = sentry.SpanStatusInvalidArgument
	} else {
		span.Status = sentry.SpanStatusOK
	}

	span.Description = fmt.Sprintf("Note math: %s", expression)
}
