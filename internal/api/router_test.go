package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Conceptual-Machines/musictheory-api/internal/config"
	"github.com/Conceptual-Machines/musictheory-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(authMode string) (*gin.Engine, *metrics.Prometheus) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment:        "test",
		AuthMode:           authMode,
		JWTSecret:          "router-secret",
		DrillQuestionCount: 10,
		MIDITempo:          120,
	}
	prom := metrics.NewPrometheus()
	return SetupRouter(cfg, "test", nil, prom), prom
}

func get(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_PublicRoutes(t *testing.T) {
	router, _ := setupRouter("jwt")

	assert.Equal(t, http.StatusOK, get(router, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, get(router, "/api/metrics", nil).Code)
}

func TestSetupRouter_AuthModes(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		router, _ := setupRouter("none")
		assert.Equal(t, http.StatusOK, get(router, "/api/v1/notes", nil).Code)
	})

	t.Run("gateway", func(t *testing.T) {
		router, _ := setupRouter("gateway")
		assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/notes", nil).Code)
		assert.Equal(t, http.StatusOK, get(router, "/api/v1/notes", map[string]string{"X-User-ID": "9"}).Code)
	})

	t.Run("jwt", func(t *testing.T) {
		router, _ := setupRouter("jwt")
		assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/notes", nil).Code)

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "player-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("router-secret"))
		require.NoError(t, err)

		w := get(router, "/api/v1/notes", map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSetupRouter_Compression(t *testing.T) {
	router, _ := setupRouter("none")
	accept := map[string]string{"Accept-Encoding": "gzip"}

	w := get(router, "/api/v1/scales/C", accept)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	w = get(router, "/api/v1/export/scale/C", accept)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "audio/midi", w.Header().Get("Content-Type"))
}

func TestSetupRouter_PrometheusEndpoint(t *testing.T) {
	router, _ := setupRouter("none")

	get(router, "/api/v1/keys/G", nil)

	w := get(router, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `musictheory_http_requests_total{method="GET",route="/api/v1/keys/:root",status="200"} 1`)
}
