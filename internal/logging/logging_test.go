// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/coursefinder/pkg/types"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursefinder.log")
	l, err := New(types.LogConfig{Level: "info", Format: "json", File: path}, true)
	require.NoError(t, err)

	l.Info("started", zap.String("addr", ":8123"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
	assert.Contains(t, string(data), `"addr":":8123"`)
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursefinder.log")
	l, err := New(types.LogConfig{Level: "loud", File: path}, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}

func TestForTerminalWithoutFileIsNop(t *testing.T) {
	l, err := ForTerminal(types.LogConfig{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.ErrorLevel))
}

func newTestRouter(l *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), GinMiddleware(l))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestRouter(zap.New(core))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http_request", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/health", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), fields["request_id"])
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := newTestRouter(zap.NewNop())
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestRequestIDReplacesGarbage(t *testing.T) {
	r := newTestRouter(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid\nInjected: yes")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}
