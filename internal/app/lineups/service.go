package lineups

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	domainlineups "baseball-graph-service/internal/domain/lineups"
	"baseball-graph-service/internal/domain/players"
)

// Store defines the storage contract for lineup reads and writes.
type Store interface {
	Lineup(ctx context.Context, lineupID int64) (domainlineups.Lineup, error)
	CreateLineup(ctx context.Context) (domainlineups.Lineup, error)
	AssignPlayer(ctx context.Context, lineupID int64, pos domainlineups.Position, match players.Match) error
}

// Service coordinates lineup operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the nine-slot shape for lineupID. Existence is not checked;
// unknown identifiers read as all-absent.
func (s *Service) Get(ctx context.Context, lineupID int64) (domainlineups.Lineup, error) {
	return s.store.Lineup(ctx, lineupID)
}

// Apply persists the requested assignments and returns the refreshed shape.
// A nil lineupID creates a fresh lineup first. Each query string resolves
// independently, writes for distinct positions run concurrently, and the
// re-read waits for all of them. A query matching no player leaves its
// position untouched; a failed write fails the whole call without undoing
// sibling writes that already landed.
func (s *Service) Apply(ctx context.Context, lineupID *int64, queries map[domainlineups.Position]string) (domainlineups.Lineup, error) {
	var id int64
	if lineupID != nil {
		id = *lineupID
	} else {
		created, err := s.store.CreateLineup(ctx)
		if err != nil {
			return domainlineups.Lineup{}, fmt.Errorf("create lineup: %w", err)
		}
		id = created.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	for pos, query := range queries {
		pos, query := pos, query
		g.Go(func() error {
			return s.store.AssignPlayer(gctx, id, pos, players.ParseMatch(query))
		})
	}
	if err := g.Wait(); err != nil {
		return domainlineups.Lineup{}, err
	}

	return s.store.Lineup(ctx, id)
}
