package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	applineups "baseball-graph-service/internal/app/lineups"
	appplayers "baseball-graph-service/internal/app/players"
	"baseball-graph-service/internal/graph"
	"baseball-graph-service/internal/http/handlers"
	"baseball-graph-service/internal/metrics"
	"baseball-graph-service/internal/teststubs"
	"baseball-graph-service/internal/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	gateway := teststubs.NewStubGateway()
	logger, _ := testutil.NewBufferLogger()
	resolver := graph.NewResolver(appplayers.NewService(gateway), applineups.NewService(gateway), logger)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	h := handlers.NewHandler(schema, gateway, nil, metrics.NewRecorder(), logger, false)
	return NewRouter(h)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newRouter(t)

	cases := map[string]int{
		"/health": http.StatusOK,
		"/ready":  http.StatusOK,
	}

	for path, expected := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterServesGraphQL(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/graphql?query=%7B%20players%20%7B%20playerId%20%7D%20%7D", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from graphql endpoint, got %d", rr.Code)
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
