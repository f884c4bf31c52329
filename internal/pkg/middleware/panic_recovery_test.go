package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger(buf *bytes.Buffer) *logger.ZapLogger {
	config := zap.NewDevelopmentConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(config.EncoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return &logger.ZapLogger{Logger: zap.New(core)}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := newBufferLogger(&logBuffer)

	tests := []struct {
		name         string
		panicValue   interface{}
		expectInLogs []string
		setupContext func(c echo.Context)
	}{
		{
			name:         "string panic",
			panicValue:   "test panic message",
			expectInLogs: []string{"test panic message", "stack_trace", "Panic recovered during request processing"},
		},
		{
			name:         "error panic",
			panicValue:   fmt.Errorf("test error panic"),
			expectInLogs: []string{"test error panic", "*errors.errorString"},
		},
		{
			name:         "panic with user context",
			panicValue:   "user context panic",
			expectInLogs: []string{"user context panic", "42"},
			setupContext: func(c echo.Context) {
				c.Set(ContextUserID, int64(42))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuffer.Reset()
			e := echo.New()

			handler := PanicRecoveryMiddleware(zapLogger)(func(c echo.Context) error {
				if tt.setupContext != nil {
					tt.setupContext(c)
				}
				panic(tt.panicValue)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set(echo.HeaderAuthorization, "Bearer secret-token")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			assert.NoError(t, handler(c))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, "Internal server error", response["message"])

			logOutput := logBuffer.String()
			for _, expected := range tt.expectInLogs {
				assert.Contains(t, logOutput, expected)
			}
			assert.Contains(t, logOutput, "/api/user/profile")
			assert.Contains(t, logOutput, "test-agent")
			assert.NotContains(t, logOutput, "secret-token")
		})
	}
}

func TestPanicRecoveryWithNewRelicTransaction(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := newBufferLogger(&logBuffer)

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("test-app"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	e := echo.New()
	e.Use(NewRelicMiddleware(app))
	e.Use(PanicRecoveryMiddleware(zapLogger))
	e.POST("/api/auth/send-code", func(c echo.Context) error {
		panic("new relic panic test")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/send-code", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logBuffer.String(), "new relic panic test")
	assert.Contains(t, logBuffer.String(), "POST")
}

func TestPanicRecoveryMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() {
		PanicRecoveryMiddleware(nil)
	})
}

func TestExtractSafeHeaders(t *testing.T) {
	headers := http.Header{
		"Content-Type":  []string{"application/json"},
		"Authorization": []string{"Bearer secret"},
		"Cookie":        []string{"session=secret"},
		"X-Request-Id":  []string{"request-123"},
	}

	safe := extractSafeHeaders(headers)

	assert.Equal(t, "application/json", safe["Content-Type"])
	assert.Equal(t, "request-123", safe["X-Request-Id"])
	assert.NotContains(t, safe, "Authorization")
	assert.NotContains(t, safe, "Cookie")
}

func TestNewRelicMiddleware_NilAppPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(NewRelicMiddleware(nil))
	e.GET("/", func(c echo.Context) error {
		assert.Nil(t, GetTransaction(c))
		AddAttribute(c, "k", "v")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
