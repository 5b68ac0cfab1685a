package http

import (
	nethttp "net/http"

	"baseball-graph-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/graphql", handler.GraphQL)
	mux.HandleFunc("/", handler.NotFound)
	return mux
}
