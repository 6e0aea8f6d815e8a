package handlers

import (
	"net/http"
	"testing"

	"github.com/Conceptual-Machines/musictheory-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestNoteMathHandler_Evaluate(t *testing.T) {
	router := setupTestRouter(testConfig(), nil)

	tests := []struct {
		name            string
		request         NoteMathRequest
		expectedCode    int
		expectedResult  int
		expectedSteps   int
		expectedSkipped int
	}{
		{
			name:           "explicit start",
			request:        NoteMathRequest{Start: "D", Expression: "+ W + W - H"},
			expectedCode:   http.StatusOK,
			expectedResult: 5,
			expectedSteps:  3,
		},
		{
			name:           "start inside expression",
			request:        NoteMathRequest{Expression: "Do + 3(W) - H"},
			expectedCode:   http.StatusOK,
			expectedResult: 5,
			expectedSteps:  2,
		},
		{
			name:           "no spaces",
			request:        NoteMathRequest{Start: "Sol", Expression: "+W+H"},
			expectedCode:   http.StatusOK,
			expectedResult: 10,
			expectedSteps:  2,
		},
		{
			name:            "lenient skips unknown step",
			request:         NoteMathRequest{Start: "D", Expression: "+ W + X - H"},
			expectedCode:    http.StatusOK,
			expectedResult:  3,
			expectedSteps:   2,
			expectedSkipped: 1,
		},
		{
			name:         "strict rejects unknown step",
			request:      NoteMathRequest{Start: "D", Expression: "+ W + X - H", Strict: boolPtr(true)},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown start",
			request:      NoteMathRequest{Start: "H", Expression: "+ W"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown start inside expression",
			request:      NoteMathRequest{Expression: "Xyz + W"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing expression",
			request:      NoteMathRequest{Start: "C"},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/v1/notemath/evaluate", tt.request)
			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedCode != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"error"`)
				return
			}

			resp := decode[NoteMathResponse](t, w)
			assert.Equal(t, tt.expectedResult, resp.Result.Value)
			assert.Len(t, resp.Steps, tt.expectedSteps)
			assert.Len(t, resp.Skipped, tt.expectedSkipped)
		})
	}
}

func TestNoteMathHandler_StrictDefault(t *testing.T) {
	cfg := testConfig()
	cfg.StrictNoteMath = true
	router := setupTestRouter(cfg, nil)

	w := performRequest(router, http.MethodPost, "/api/v1/notemath/evaluate",
		NoteMathRequest{Start: "C", Expression: "+ W W"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed step")

	w = performRequest(router, http.MethodPost, "/api/v1/notemath/evaluate",
		NoteMathRequest{Start: "C", Expression: "+ W W", Strict: boolPtr(false)})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[NoteMathResponse](t, w)
	assert.False(t, resp.Strict)
	assert.Equal(t, 2, resp.Result.Value)
}

func TestNoteMathHandler_RecordsOutcomes(t *testing.T) {
	prom := metrics.NewPrometheus()
	router := setupTestRouter(testConfig(), prom)

	performRequest(router, http.MethodPost, "/api/v1/notemath/evaluate", NoteMathRequest{Start: "C", Expression: "+ W"})
	performRequest(router, http.MethodPost, "/api/v1/notemath/evaluate", NoteMathRequest{Start: "C", Expression: "+ W + Q + R"})
	performRequest(router, http.MethodPost, "/api/v1/notemath/evaluate",
		NoteMathRequest{Start: "C", Expression: "+ Q", Strict: boolPtr(true)})

	assert.Equal(t, float64(1), testutil.ToFloat64(prom.NoteMathEvaluations.WithLabelValues(outcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(prom.NoteMathEvaluations.WithLabelValues(outcomeSkipped)))
	assert.Equal(t, float64(1), testutil.ToFloat64(prom.NoteMathEvaluations.WithLabelValues(outcomeRejected)))
	assert.Equal(t, float64(3), testutil.ToFloat64(prom.NoteMathSkipped))
}
