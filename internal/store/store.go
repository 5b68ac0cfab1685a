package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"baseball-graph-service/internal/metrics"
)

// Query names used for metrics labels.
const (
	queryFindPlayers  = "find_players"
	queryProfiles     = "profiles"
	queryStats        = "stats"
	queryLineup       = "lineup"
	queryCreateLineup = "create_lineup"
	queryAssignPlayer = "assign_player"
)

// Store is the SQLite-backed storage gateway. Absence of a row is a
// first-class result on every read path, never an error.
type Store struct {
	db      *sql.DB
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Open opens (or creates) the database at path. ":memory:" runs fully
// in-process. The connection pool is capped at one connection: the DSN
// pragmas apply per connection, and an in-memory database exists only as
// long as its single connection does.
func Open(path string, logger *slog.Logger, recorder *metrics.Recorder) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=case_sensitive_like(1)&_pragma=busy_timeout(5000)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	return &Store{db: db, logger: logger, metrics: recorder}, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS people (
		player_id     TEXT PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		birth_year    INTEGER NOT NULL,
		birth_country TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS batting (
		player_id  TEXT NOT NULL REFERENCES people(player_id),
		season     INTEGER NOT NULL,
		at_bats    INTEGER NOT NULL,
		strikeouts INTEGER NOT NULL,
		doubles    INTEGER NOT NULL,
		triples    INTEGER NOT NULL,
		home_runs  INTEGER NOT NULL,
		hits       INTEGER NOT NULL,
		PRIMARY KEY (player_id, season)
	)`,
	`CREATE TABLE IF NOT EXISTS lineups (
		lineup_id INTEGER PRIMARY KEY AUTOINCREMENT
	)`,
	`CREATE TABLE IF NOT EXISTS lineup_assignments (
		lineup_id INTEGER NOT NULL REFERENCES lineups(lineup_id),
		position  TEXT NOT NULL,
		player_id TEXT NOT NULL REFERENCES people(player_id),
		UNIQUE (lineup_id, position),
		UNIQUE (lineup_id, player_id)
	)`,
}

// Migrate applies the schema. Statements are idempotent, so Migrate is safe
// to run on every boot.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not configured")
	}
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) observe(query string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordStoreQuery(query, time.Since(start), err)
	}
}

// prefixPattern builds a LIKE pattern anchored at the start of the value.
// LIKE metacharacters in the prefix are escaped so they match literally;
// an empty prefix matches everything.
func prefixPattern(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// distinctKeys deduplicates ids preserving first-seen order.
func distinctKeys(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
