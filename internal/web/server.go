// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the query form as an HTML page. Every request mounts a
// fresh form: GET shows it empty, POST submits the posted query and renders
// the outcome.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/internal/logging"
	"github.com/pdiddy/coursefinder/internal/metrics"
	"github.com/pdiddy/coursefinder/internal/render"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the gin engine.
type Server struct {
	Engine  *gin.Engine
	querier form.Querier
	opts    form.Options
	log     *zap.Logger
}

// NewServer builds the routes. rec may be nil, in which case /metrics is not
// registered and submissions are not counted.
func NewServer(q form.Querier, opts form.Options, log *zap.Logger, rec *metrics.Recorder) (*Server, error) {
	tmpl, err := render.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.RequestID())
	engine.Use(logging.GinMiddleware(log))
	if rec != nil {
		engine.Use(rec.GinMiddleware())
	}
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		Engine:  engine,
		querier: metrics.Instrument(q, rec),
		opts:    opts,
		log:     log,
	}

	engine.GET("/", s.showForm)
	engine.POST("/", s.submitForm)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if rec != nil {
		engine.GET("/metrics", gin.WrapH(rec.Handler()))
	}
	return s, nil
}

func (s *Server) showForm(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageTemplateName, render.NewPage(form.New(s.opts)))
}

func (s *Server) submitForm(c *gin.Context) {
	text := c.PostForm("query")
	state := form.Submit(c.Request.Context(), s.querier, form.New(s.opts), text)
	if !state.CanSubmit() {
		c.HTML(http.StatusUnprocessableEntity, render.PageTemplateName, render.NewPage(state))
		return
	}
	s.log.Debug("query submitted",
		zap.String("request_id", logging.RequestIDFrom(c)),
		zap.Stringer("phase", state.Phase()),
		zap.Int("courses", len(state.Results())),
	)
	c.HTML(http.StatusOK, render.PageTemplateName, render.NewPage(state))
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
