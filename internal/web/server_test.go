// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/internal/metrics"
	"github.com/pdiddy/coursefinder/internal/queryservice"
	"github.com/pdiddy/coursefinder/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubQuerier struct {
	resp  types.QueryResponse
	err   error
	calls []string
}

func (q *stubQuerier) Query(_ context.Context, text string) (types.QueryResponse, error) {
	q.calls = append(q.calls, text)
	return q.resp, q.err
}

func newTestServer(t *testing.T, q form.Querier) *Server {
	t.Helper()
	s, err := NewServer(q, form.Options{}, zap.NewNop(), metrics.New())
	require.NoError(t, err)
	return s
}

func postQuery(s *Server, text string) *httptest.ResponseRecorder {
	body := url.Values{"query": {text}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

func TestShowFormEmpty(t *testing.T) {
	s := newTestServer(t, &stubQuerier{})
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="search-button" disabled>`)
	assert.NotContains(t, w.Body.String(), `class="error"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSubmitEmptyQueryMakesNoRequest(t *testing.T) {
	q := &stubQuerier{}
	s := newTestServer(t, q)
	w := postQuery(s, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, q.calls)
	assert.Contains(t, w.Body.String(), `id="search-button" disabled>`)
}

func TestSubmitRendersCoursesInOrder(t *testing.T) {
	q := &stubQuerier{resp: types.QueryResponse{Courses: []types.CourseRecord{
		{Name: "Image Processing and Analysis", CatalogNumber: "507"},
		{Name: "Statistical Machine Learning", CatalogNumber: "575"},
	}}}
	s := newTestServer(t, q)
	w := postQuery(s, "graduate CSE courses with 3 credits")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, []string{"graduate CSE courses with 3 credits"}, q.calls)
	assert.Equal(t, 2, strings.Count(body, "<h3>"))
	assert.Less(t, strings.Index(body, "Image Processing"), strings.Index(body, "Statistical Machine"))
	assert.Contains(t, body, `value="graduate CSE courses with 3 credits"`)
	assert.Contains(t, body, `id="search-button">`)
}

func TestSubmitServiceError(t *testing.T) {
	s := newTestServer(t, &stubQuerier{resp: types.QueryResponse{Error: "no matches"}})
	w := postQuery(s, "x")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="error">no matches</div>`)
	assert.NotContains(t, w.Body.String(), "<h3>")
}

func TestSubmitAgainstUnreachableService(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	endpoint := dead.URL
	dead.Close()

	s := newTestServer(t, &queryservice.Client{HTTP: http.DefaultClient, Endpoint: endpoint})
	w := postQuery(s, "x")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`<div class="error">%s</div>`, form.GenericErrorMessage))
	assert.NotContains(t, w.Body.String(), "<h3>")
}

func TestSubmitAgainstRealServiceEmptyObject(t *testing.T) {
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer svc.Close()

	s := newTestServer(t, &queryservice.Client{HTTP: svc.Client(), Endpoint: svc.URL})
	w := postQuery(s, "x")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `class="error"`)
	assert.NotContains(t, w.Body.String(), "<h3>")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, &stubQuerier{})
	postQuery(s, "x")

	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	s.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `coursefinder_submissions_total{outcome="results"} 1`)
}

func TestNoMetricsRouteWithoutRecorder(t *testing.T) {
	s, err := NewServer(&stubQuerier{}, form.Options{}, zap.NewNop(), nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestServer(t, &stubQuerier{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-done)
}
