package players

import (
	"context"
	"fmt"
)

// Store defines the storage contract for player search.
type Store interface {
	FindPlayers(ctx context.Context, firstPrefix, lastPrefix string) ([]string, error)
}

// Service coordinates player lookups using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Search returns identifiers of players whose first and last names start
// with the given prefixes, ordered by first then last name. An empty prefix
// matches everything and an empty result is not an error.
func (s *Service) Search(ctx context.Context, firstPrefix, lastPrefix string) ([]string, error) {
	ids, err := s.store.FindPlayers(ctx, firstPrefix, lastPrefix)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return ids, nil
}
