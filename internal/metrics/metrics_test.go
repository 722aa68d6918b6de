package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape returns the Prometheus exposition of the provider.
func scrape(t *testing.T, provider *Provider) string {
	t.Helper()

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() { assert.NoError(t, provider.Shutdown(context.Background())) }()

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.registry)
}

func TestProvider_ShutdownNil(t *testing.T) {
	assert.NoError(t, (&Provider{}).Shutdown(context.Background()))
}

func TestBusinessMetrics_Exported(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "account", "register", "conflict")
	bm.RecordOperation(ctx, "account", "register", "conflict")
	bm.RecordOperation(ctx, "eventstore", "append", "duplicate")
	bm.RecordDuration(ctx, "eventstore", "append", 15*time.Millisecond, "appended")

	output := scrape(t, provider)

	assert.Regexp(t, `test_app_operations_total\{[^}]*operation="register"[^}]*status="conflict"[^}]*\} 2`, output)
	assert.Regexp(t, `test_app_operations_total\{[^}]*operation="append"[^}]*status="duplicate"[^}]*\} 1`, output)
	assert.Contains(t, output, "test_app_operation_duration_seconds")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	bm.RecordOperation(context.Background(), "account", "register", "success")
	bm.RecordDuration(context.Background(), "account", "register", time.Second, "success")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
	router.POST("/v1/auth/register", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"message": "email taken"})
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/auth/register", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	output := scrape(t, provider)

	assert.Regexp(t, `test_app_http_requests_total\{[^}]*path="/v1/auth/register"[^}]*status_code="409"[^}]*\} 1`, output)
	assert.Regexp(t, `test_app_http_requests_total\{[^}]*path="unknown"[^}]*status_code="404"[^}]*\} 1`, output)
}
