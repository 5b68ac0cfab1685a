package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"baseball-graph-service/internal/http/requestutil"
	"baseball-graph-service/internal/logging"
)

// Seeder loads the sample dataset when storage is empty.
type Seeder interface {
	SeedIfEmpty(ctx context.Context) (bool, error)
}

// AdminHandler exposes admin-only endpoints (e.g., forcing the seed).
type AdminHandler struct {
	seeder Seeder
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(seeder Seeder, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		seeder: seeder,
		token:  token,
		logger: logger,
	}
}

// Seed runs the idempotent sample-data load against an empty database.
// Guarded by ADMIN_TOKEN env; returns 401 if missing/invalid.
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.seeder == nil {
		writeError(w, r, http.StatusServiceUnavailable, "seeder not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	seeded, err := h.seeder.SeedIfEmpty(r.Context())
	if err != nil {
		logging.Error(logger, "admin seed failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to seed", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"seeded": seeded,
	}, logger)
	logging.Info(logger, "admin seed complete", "seeded", seeded)
}

// AdminTokenFromEnv reads ADMIN_TOKEN (optional).
func AdminTokenFromEnv() string {
	return os.Getenv("ADMIN_TOKEN")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
