package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newObservedRouter(status int) (*gin.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core).Sugar()))
	r.GET("/test-path", func(c *gin.Context) { c.Status(status) })
	return r, logs
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{name: "success", status: http.StatusOK, wantLevel: zapcore.InfoLevel},
		{name: "client error", status: http.StatusNotFound, wantLevel: zapcore.WarnLevel},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, logs := newObservedRouter(tt.status)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test-path", nil))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, "http.request", entry.Message)
			assert.Equal(t, tt.wantLevel, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "GET", fields["method"])
			assert.Equal(t, "/test-path", fields["path"])
			assert.EqualValues(t, tt.status, fields["status"])
		})
	}
}

func TestLogger_RequestID(t *testing.T) {
	r, logs := newObservedRouter(http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/test-path", nil)
	req.Header.Set(RequestIDHeader, "test-request-id-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "test-request-id-123", rec.Header().Get(RequestIDHeader))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "test-request-id-123", logs.All()[0].ContextMap()["request_id"])

	// Without an incoming ID one is generated.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test-path", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
