package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/compras/backend/internal/infrastructure/config"
	"github.com/compras/backend/internal/infrastructure/telemetry"
)

func TestHTTPMetrics(t *testing.T) {
	t.Run("nil provider passes requests through", func(t *testing.T) {
		r := newRouter(HTTPMetrics(nil, "compras"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("disabled provider passes requests through", func(t *testing.T) {
		mp, err := telemetry.NewMeterProvider(context.Background(), config.TelemetryConfig{}, zaptest.NewLogger(t))
		require.NoError(t, err)

		r := newRouter(HTTPMetrics(mp, "compras"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("enabled provider records without altering responses", func(t *testing.T) {
		mp, err := telemetry.NewMeterProvider(context.Background(), config.TelemetryConfig{
			Enabled:           true,
			MetricsEnabled:    true,
			CollectorEndpoint: "localhost:4317",
			Insecure:          true,
			ServiceName:       "compras-test",
			MetricsInterval:   time.Hour,
		}, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.True(t, mp.IsEnabled())

		r := newRouter(HTTPMetrics(mp, "compras-test"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())

		// recording must also survive requests with no matched route
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
