package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jeopardy-stats-service/internal/app/analysis"
	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/http/handlers"
	"jeopardy-stats-service/internal/query"
)

type emptySeasons struct{}

func (emptySeasons) Range(context.Context, int, int) ([]games.Game, error) { return nil, nil }
func (emptySeasons) Seasons() ([]int, error)                               { return []int{}, nil }

func newRouter() http.Handler {
	svc := analysis.NewService(emptySeasons{}, emptySeasons{}, query.NewEngine(nil, nil, nil), nil, nil, nil)
	return NewRouter(handlers.NewHandler(svc, nil, nil))
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newRouter()

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/api/seasons", "", http.StatusOK},
		{http.MethodGet, "/api/queries", "", http.StatusOK},
		{http.MethodPost, "/api/analyze", `{"query":"lockouts"}`, http.StatusOK},
		{http.MethodGet, "/api/questions", "", http.StatusServiceUnavailable}, // no store configured
		{http.MethodPost, "/api/ask", `{"questionText":"who wins?"}`, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("route %s %s expected status %d, got %d body=%s", tc.method, tc.path, tc.want, rr.Code, rr.Body.String())
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/games/today", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
