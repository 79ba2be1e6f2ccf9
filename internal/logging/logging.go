// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap logger and the gin request logging
// middleware.
package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/coursefinder/pkg/types"
)

// RequestIDHeader carries the request ID on web form requests and responses.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// New returns a logger for cfg. production selects zap's production preset
// (sampling, info level); otherwise the development preset is used.
func New(cfg types.LogConfig, production bool) (*zap.Logger, error) {
	var zapCfg zap.Config
	if production {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Format {
	case "console":
		zapCfg.Encoding = "console"
	default:
		zapCfg.Encoding = "json"
	}

	if cfg.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

// ForTerminal returns a logger that never writes to the terminal: a file
// logger when cfg.File is set, a no-op logger otherwise.
func ForTerminal(cfg types.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return New(cfg, false)
}

// RequestID assigns each request an ID, reusing a well-formed incoming one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the ID assigned by RequestID, or "".
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// GinMiddleware logs one line per request.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id := RequestIDFrom(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}

		l.Info("http_request", fields...)
	}
}
