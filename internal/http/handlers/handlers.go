package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"

	"baseball-graph-service/internal/graph"
	"baseball-graph-service/internal/logging"
	"baseball-graph-service/internal/metrics"
)

type nowFunc func() time.Time

// Pinger reports whether backing storage can serve traffic.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires the HTTP routes to the GraphQL engine and the store probes.
type Handler struct {
	gql        *gqlhandler.Handler
	newLoaders func() *graph.Loaders
	ready      Pinger
	recorder   *metrics.Recorder
	logger     *slog.Logger
	now        nowFunc
}

// NewHandler constructs a Handler over the executable schema. Every request
// hitting the GraphQL endpoint gets a fresh loader set over gateway, so
// batching and memoization never leak across requests.
func NewHandler(schema graphql.Schema, gateway graph.Gateway, ready Pinger, recorder *metrics.Recorder, logger *slog.Logger, graphiql bool) *Handler {
	h := &Handler{
		newLoaders: func() *graph.Loaders { return graph.NewLoaders(gateway, recorder) },
		ready:      ready,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}
	h.gql = gqlhandler.New(&gqlhandler.Config{
		Schema:           &schema,
		Pretty:           true,
		GraphiQL:         graphiql,
		ResultCallbackFn: h.recordOperation,
	})
	return h
}

// GraphQL serves queries and mutations. GET carries GraphiQL and
// query-string requests; POST carries JSON bodies. Parsing is the
// library's job; this wrapper only scopes the loaders to the request.
func (h *Handler) GraphQL(w nethttp.ResponseWriter, r *nethttp.Request) {
	ctx := graph.WithLoaders(r.Context(), h.newLoaders())
	ctx = withOperationStart(ctx, h.now())
	h.gql.ContextHandler(ctx, w, r)
}

// Health reports the service is up.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.ready == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if err := h.ready.Ping(r.Context()); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "readiness ping failed", slog.Any("err", err))
		writeError(w, r, nethttp.StatusServiceUnavailable, "storage unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// NotFound is the fallback route.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

type operationStartKey struct{}

func withOperationStart(ctx context.Context, at time.Time) context.Context {
	return context.WithValue(ctx, operationStartKey{}, at)
}

func operationStart(ctx context.Context) (time.Time, bool) {
	at, ok := ctx.Value(operationStartKey{}).(time.Time)
	return at, ok
}

// recordOperation runs after the response body has been written.
func (h *Handler) recordOperation(ctx context.Context, params *graphql.Params, result *graphql.Result, _ []byte) {
	var elapsed time.Duration
	if started, ok := operationStart(ctx); ok {
		elapsed = h.now().Sub(started)
	}
	name := params.OperationName
	if name == "" {
		name = "anonymous"
	}
	h.recorder.RecordOperation(name, elapsed, len(result.Errors))

	logging.Info(logging.FromContext(ctx, h.logger), "graphql operation complete",
		logging.FieldOperation, name,
		logging.FieldDurationMS, elapsed.Milliseconds(),
		logging.FieldErrors, len(result.Errors),
	)
}
