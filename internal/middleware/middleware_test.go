package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aioutlet/variant-service/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CorrelationID())
	router.Use(AuthMiddleware(testSecret, zap.NewNop()))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "role": c.GetString("userRole")})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	valid := signToken(t, jwt.MapClaims{"sub": "merchant-1", "role": "seller", "exp": time.Now().Add(time.Hour).Unix()}, jwt.SigningMethodHS256, []byte(testSecret))
	idOnly := signToken(t, jwt.MapClaims{"id": "merchant-2"}, jwt.SigningMethodHS256, []byte(testSecret))
	expired := signToken(t, jwt.MapClaims{"sub": "merchant-1", "exp": time.Now().Add(-time.Hour).Unix()}, jwt.SigningMethodHS256, []byte(testSecret))
	wrongKey := signToken(t, jwt.MapClaims{"sub": "merchant-1"}, jwt.SigningMethodHS256, []byte("other"))
	noUser := signToken(t, jwt.MapClaims{"role": "seller"}, jwt.SigningMethodHS256, []byte(testSecret))

	tests := []struct {
		name       string
		header     string
		expectCode int
		expectUser string
	}{
		{"Valid token with sub", "Bearer " + valid, http.StatusOK, "merchant-1"},
		{"Valid token with id", "Bearer " + idOnly, http.StatusOK, "merchant-2"},
		{"Missing header", "", http.StatusUnauthorized, ""},
		{"Wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"Empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"Expired token", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"Wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, ""},
		{"No user claim", "Bearer " + noUser, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			authRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.expectCode, w.Code)
			if tt.expectUser != "" {
				assert.Contains(t, w.Body.String(), tt.expectUser)
			}
		})
	}
}

func TestCorrelationID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetCorrelationID(c))
	})

	t.Run("Reuses incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(CorrelationIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(CorrelationIDHeader))
	})

	t.Run("Issues new id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(CorrelationIDHeader))
	})
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics("metrics-test"))
	router.GET("/drafts/:draftId", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "/drafts/:draftId", "200"))

	for _, id := range []string{"a", "b", "c"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/drafts/"+id, nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "/drafts/:draftId", "200"))
	assert.Equal(t, before+3, after)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "unknown", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.HTTPRequestsInFlight.WithLabelValues("metrics-test")))
}
