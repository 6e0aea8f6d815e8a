package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Conceptual-Machines/musictheory-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// setupAuthRouter exposes the user identity the auth middleware stored
func setupAuthRouter(auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(auth)
	router.GET("/whoami", func(c *gin.Context) {
		id, _ := GetUserIDFromGateway(c)
		role, _ := GetUserRoleFromGateway(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	return router
}

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestNoAuth(t *testing.T) {
	router := setupAuthRouter(NoAuth())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"anonymous"`)
}

func TestGatewayAuth(t *testing.T) {
	router := setupAuthRouter(GatewayAuth())

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("trusted headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User-ID", "42")
		req.Header.Set("X-User-Role", "student")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"42"`)
		assert.Contains(t, w.Body.String(), `"role":"student"`)
	})
}

func TestJWTAuth(t *testing.T) {
	router := setupAuthRouter(JWTAuth(testSecret))

	valid := Claims{
		Role: "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "player-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"valid token", "Bearer " + signToken(t, valid, testSecret), http.StatusOK},
		{"wrong secret", "Bearer " + signToken(t, valid, "other"), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, expired, testSecret), http.StatusUnauthorized},
		{"no subject", "Bearer " + signToken(t, noSubject, testSecret), http.StatusUnauthorized},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"id":"player-7"`)
				assert.Contains(t, w.Body.String(), `"role":"student"`)
			}
		})
	}
}

func TestRequestTracking(t *testing.T) {
	prom := metrics.NewPrometheus()

	router := gin.New()
	router.Use(RequestTracking(nil, prom))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "abc-123")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("unmatched routes share one label", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/1", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	assert.Equal(t, float64(2), testutil.ToFloat64(prom.HTTPRequestsTotal.WithLabelValues("GET", "/ping", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(prom.HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")))
}

func TestRecoverWithSentry(t *testing.T) {
	router := gin.New()
	router.Use(RecoverWithSentry())
	router.Use(NoAuth())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.POST("/api/v1/notemath/evaluate", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/notemath/evaluate", nil)
	req.Header.Set("Origin", "https://game.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
