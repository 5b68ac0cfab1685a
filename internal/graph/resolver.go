package graph

import (
	"errors"
	"log/slog"

	"github.com/graphql-go/graphql"

	applineups "baseball-graph-service/internal/app/lineups"
	appplayers "baseball-graph-service/internal/app/players"
	"baseball-graph-service/internal/domain/lineups"
	"baseball-graph-service/internal/domain/players"
	"baseball-graph-service/internal/logging"
)

// Resolver backs the schema's entry points with the application services.
// Player stubs flow through the graph carrying only an identifier; profile
// and stats data is pulled lazily through the request's loaders.
type Resolver struct {
	players *appplayers.Service
	lineups *applineups.Service
	logger  *slog.Logger
}

// NewResolver wires the resolver over the player and lineup services.
func NewResolver(players *appplayers.Service, lineups *applineups.Service, logger *slog.Logger) *Resolver {
	return &Resolver{players: players, lineups: lineups, logger: logger}
}

// resolvePlayer returns a stub for the requested identifier without checking
// that it exists. Existence surfaces later, if and when profile or stats are
// requested on the stub.
func (r *Resolver) resolvePlayer(p graphql.ResolveParams) (interface{}, error) {
	id, ok := p.Args["playerId"].(string)
	if !ok {
		return nil, nil
	}
	return players.Player{ID: id}, nil
}

// resolvePlayers searches by name prefixes and wraps each hit as a stub.
// Missing arguments behave as empty prefixes, which match everyone.
func (r *Resolver) resolvePlayers(p graphql.ResolveParams) (interface{}, error) {
	first, _ := p.Args["firstName"].(string)
	last, _ := p.Args["lastName"].(string)

	ids, err := r.players.Search(p.Context, first, last)
	if err != nil {
		return nil, err
	}
	stubs := make([]players.Player, len(ids))
	for i, id := range ids {
		stubs[i] = players.Player{ID: id}
	}
	return stubs, nil
}

func (r *Resolver) resolveLineupQuery(p graphql.ResolveParams) (interface{}, error) {
	id, ok := p.Args["lineupId"].(int)
	if !ok {
		return nil, nil
	}
	return r.lineups.Get(p.Context, int64(id))
}

// resolveLineupMutation creates a lineup when no identifier is supplied,
// fans the position arguments out to the assignment resolver, and returns
// the refreshed shape.
func (r *Resolver) resolveLineupMutation(p graphql.ResolveParams) (interface{}, error) {
	var lineupID *int64
	if raw, ok := p.Args["lineupId"].(int); ok {
		id := int64(raw)
		lineupID = &id
	}

	queries := make(map[lineups.Position]string)
	for _, pos := range lineups.Positions() {
		if q, ok := p.Args[string(pos)].(string); ok {
			queries[pos] = q
		}
	}

	updated, err := r.lineups.Apply(p.Context, lineupID, queries)
	if err != nil {
		return nil, err
	}

	logging.Info(logging.FromContext(p.Context, r.logger), "lineup updated",
		logging.FieldLineupID, updated.ID,
		logging.FieldCount, len(queries),
	)
	return updated, nil
}

// resolveProfile defers to the request's profile loader. The returned thunk
// is forced by the executor only after the current resolution wave has
// finished enqueueing loads, which is what lets sibling fields share one
// batched fetch. An absent profile means the player does not exist.
func (r *Resolver) resolveProfile(p graphql.ResolveParams) (interface{}, error) {
	stub, ok := p.Source.(players.Player)
	if !ok {
		return nil, nil
	}
	loaders := LoadersFrom(p.Context)
	if loaders == nil {
		return nil, errors.New("no loaders on request context")
	}

	thunk := loaders.Profiles.Load(p.Context, stub.ID)
	return func() (interface{}, error) {
		profile, err := thunk()
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, userInputErrorf("player %s does not exist", stub.ID)
		}
		return *profile, nil
	}, nil
}

// resolveStats mirrors resolveProfile through the stats loader. A player
// with no batting records and an unknown identifier are indistinguishable
// here; both read as absent.
func (r *Resolver) resolveStats(p graphql.ResolveParams) (interface{}, error) {
	stub, ok := p.Source.(players.Player)
	if !ok {
		return nil, nil
	}
	loaders := LoadersFrom(p.Context)
	if loaders == nil {
		return nil, errors.New("no loaders on request context")
	}

	thunk := loaders.Stats.Load(p.Context, stub.ID)
	return func() (interface{}, error) {
		stats, err := thunk()
		if err != nil {
			return nil, err
		}
		if stats == nil {
			return nil, userInputErrorf("no stats for player %s", stub.ID)
		}
		return *stats, nil
	}, nil
}
