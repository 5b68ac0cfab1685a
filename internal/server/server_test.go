package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"baseball-graph-service/internal/config"
	"baseball-graph-service/internal/metrics"
	"baseball-graph-service/internal/store"
	"baseball-graph-service/internal/testutil"
)

func openTestStore(t *testing.T, logger *slog.Logger) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:", logger, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testConfig() config.Config {
	return config.Config{
		Port: "0",
		DB:   config.DBConfig{Path: ":memory:", Seed: true},
		Metrics: config.MetricsConfig{
			Enabled: false,
		},
	}
}

type stubHTTPServer struct {
	serveErr      error
	shutdownCalls int
	handler       http.Handler
}

func (s *stubHTTPServer) ListenAndServe() error { return s.serveErr }
func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	return nil
}
func (s *stubHTTPServer) Addr() string          { return ":0" }
func (s *stubHTTPServer) Handler() http.Handler { return s.handler }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	srv, err := newServerWithMetrics(testConfig(), logger, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { _ = srv.store.Close() })
	return srv
}

func TestNewWiresHandler(t *testing.T) {
	srv := newTestServer(t)

	if srv.Handler() == nil {
		t.Fatal("expected http handler to be wired")
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestServerServesGraphQLAfterMigrateAndSeed(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	if err := srv.store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := srv.store.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	body := bytes.NewBufferString(`{"query":"{ players(firstName: \"B\", lastName: \"B\") { playerId } }"}`)
	req, _ := http.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Data struct {
			Players []struct {
				PlayerID string `json:"playerId"`
			} `json:"players"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Data.Players) != 2 {
		t.Fatalf("expected 2 players, got %+v", resp.Data.Players)
	}
	if resp.Data.Players[0].PlayerID != "3" || resp.Data.Players[1].PlayerID != "2" {
		t.Fatalf("expected [3 2], got %+v", resp.Data.Players)
	}
}

func TestAdminSeedRouteMountedWhenTokenSet(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")

	srv := newTestServer(t)
	if err := srv.store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/admin/seed", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if seeded, _ := resp["seeded"].(bool); !seeded {
		t.Fatalf("expected seeded=true, got %+v", resp)
	}
}

func TestAdminSeedRouteAbsentWithoutToken(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "")

	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, "/admin/seed", nil)
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	st := openTestStore(t, logger)
	stub := &stubHTTPServer{}
	srv := newServerWithDeps(testConfig(), logger, st, stub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, cancel) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	if stub.shutdownCalls != 1 {
		t.Fatalf("expected one shutdown call, got %d", stub.shutdownCalls)
	}
}

func TestBuildMetricsDisabledReturnsRecorderOnly(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	rec, metricsSrv, shutdown := buildMetrics(testConfig(), logger, nil)
	if rec == nil {
		t.Fatal("expected a recorder even with metrics disabled")
	}
	if metricsSrv != nil {
		t.Fatal("expected no metrics server when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
