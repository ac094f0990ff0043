package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	customMiddleware "github.com/plantnet/plantnet-server/middleware"
	"github.com/plantnet/plantnet-server/utils"
)

func TestSetupMiddleware_PanicIsLoggedAndCounted(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := utils.NewMetrics()

	e := echo.New()
	SetupMiddleware(e, []string{"http://localhost:5173"}, zap.New(core), metrics)
	e.GET("/boom", func(echo.Context) error {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(customMiddleware.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/boom", "500")))

	entries := logs.FilterMessage("http request").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.EqualValues(t, http.StatusInternalServerError, fields["status"])
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	}
}
