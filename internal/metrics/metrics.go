// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the Prometheus collectors for submissions and HTTP
// traffic.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/pkg/types"
)

// Submission outcomes.
const (
	OutcomeResults        = "results"
	OutcomeServiceError   = "service_error"
	OutcomeTransportError = "transport_error"
)

// Recorder owns a private registry so tests can build as many as they like.
type Recorder struct {
	registry        *prometheus.Registry
	handler         http.Handler
	submissions     *prometheus.CounterVec
	queryDuration   prometheus.Histogram
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coursefinder_submissions_total",
		Help: "Query submissions by outcome",
	}, []string{"outcome"})

	queryDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "coursefinder_query_duration_seconds",
		Help:    "Round trip time of query service calls",
		Buckets: prometheus.DefBuckets,
	})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coursefinder_http_requests_total",
		Help: "Web form requests",
	}, []string{"method", "path", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coursefinder_http_request_duration_seconds",
		Help:    "Duration of web form requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	registry.MustRegister(
		submissions,
		queryDuration,
		requestTotal,
		requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Recorder{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		submissions:     submissions,
		queryDuration:   queryDuration,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler { return r.handler }

// ObserveSubmission counts one finished query.
func (r *Recorder) ObserveSubmission(outcome string, d time.Duration) {
	r.submissions.WithLabelValues(outcome).Inc()
	r.queryDuration.Observe(d.Seconds())
}

// Outcome classifies a query result the way the form will display it.
func Outcome(resp types.QueryResponse, err error) string {
	switch {
	case err != nil:
		return OutcomeTransportError
	case resp.Error != "":
		return OutcomeServiceError
	default:
		return OutcomeResults
	}
}

type instrumented struct {
	next form.Querier
	rec  *Recorder
}

// Instrument wraps q so every call is counted and timed.
func Instrument(q form.Querier, rec *Recorder) form.Querier {
	if rec == nil {
		return q
	}
	return instrumented{next: q, rec: rec}
}

func (i instrumented) Query(ctx context.Context, text string) (types.QueryResponse, error) {
	start := time.Now()
	resp, err := i.next.Query(ctx, text)
	i.rec.ObserveSubmission(Outcome(resp, err), time.Since(start))
	return resp, err
}

// GinMiddleware records request counts and latency per route.
func (r *Recorder) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.requestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		r.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
