package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"productconsole/logger"
	"productconsole/models"
	"productconsole/utils"
)

func TestLoggingMiddlewareAssignsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Use(zap.New(core))

	var seen string
	handler := ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}, LoggingMiddleware)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	responses := logs.FilterMessage("HTTP Response").All()
	require.Len(t, responses, 1)
	assert.Equal(t, zapcore.WarnLevel, responses[0].Level)
	assert.EqualValues(t, http.StatusTeapot, responses[0].ContextMap()["status"])
}

func TestLoggingMiddlewareKeepsIncomingRequestID(t *testing.T) {
	logger.Use(zap.NewNop())
	handler := LoggingMiddleware(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", RequestID(r.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	handler(httptest.NewRecorder(), req)
}

func TestServiceTokenMiddleware(t *testing.T) {
	logger.Use(zap.NewNop())
	const secret = "catalog-secret"
	handler := ServiceTokenMiddleware(secret)(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "console", CallingService(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Authorization header required", body.Message)

	token, err := utils.GenerateServiceToken([]byte(secret), "console", time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	wrong, err := utils.GenerateServiceToken([]byte("other"), "console", time.Minute)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+wrong)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServiceTokenMiddlewareDisabledWithoutSecret(t *testing.T) {
	called := false
	handler := ServiceTokenMiddleware("")(func(w http.ResponseWriter, r *http.Request) { called = true })
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestMetricsMiddlewareCountsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "GET /products/{id}", "200")
	before := testutil.ToFloat64(counter)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/9", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/10", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestCORSPreflight(t *testing.T) {
	handler := CORSMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodOptions, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
