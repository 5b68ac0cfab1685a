package store

import (
	"context"
	"fmt"
	"time"

	"baseball-graph-service/internal/domain/players"
)

// FindPlayers returns the identifiers of players whose first and last names
// start with the given prefixes. Matching is case-sensitive; an empty prefix
// matches everything. Results are ordered ascending by (first_name, last_name)
// and an empty result is not an error.
func (s *Store) FindPlayers(ctx context.Context, firstPrefix, lastPrefix string) (ids []string, err error) {
	start := time.Now()
	defer func() { s.observe(queryFindPlayers, start, err) }()

	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id FROM people
		WHERE first_name LIKE ? ESCAPE '\' AND last_name LIKE ? ESCAPE '\'
		ORDER BY first_name, last_name`,
		prefixPattern(firstPrefix), prefixPattern(lastPrefix),
	)
	if err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}
	defer rows.Close()

	ids = []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}
	return ids, nil
}

// Profiles fetches profiles for ids in one set query and scatters them back
// positionally: output length equals input length, nil marks an identifier
// not present in storage, and duplicated inputs each receive their own copy.
func (s *Store) Profiles(ctx context.Context, ids []string) (out []*players.Profile, err error) {
	start := time.Now()
	defer func() { s.observe(queryProfiles, start, err) }()

	out = make([]*players.Profile, len(ids))
	distinct := distinctKeys(ids)
	if len(distinct) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, first_name, last_name, birth_year, birth_country
		 FROM people WHERE player_id IN (`+placeholders(len(distinct))+`)`,
		idArgs(distinct)...,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]players.Profile, len(distinct))
	for rows.Next() {
		var p players.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.BirthYear, &p.BirthCountry); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		byID[p.ID] = p.Profile()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}

	for i, id := range ids {
		if p, ok := byID[id]; ok {
			profile := p
			out[i] = &profile
		}
	}
	return out, nil
}

// Stats aggregates batting lines for ids in one set query, with the same
// positional alignment contract as Profiles. A player with zero batting rows
// gets nil, not a zeroed aggregate.
func (s *Store) Stats(ctx context.Context, ids []string) (out []*players.Stats, err error) {
	start := time.Now()
	defer func() { s.observe(queryStats, start, err) }()

	out = make([]*players.Stats, len(ids))
	distinct := distinctKeys(ids)
	if len(distinct) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, SUM(at_bats), SUM(hits), SUM(doubles), SUM(triples), SUM(home_runs), SUM(strikeouts)
		 FROM batting WHERE player_id IN (`+placeholders(len(distinct))+`)
		 GROUP BY player_id`,
		idArgs(distinct)...,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]players.Stats, len(distinct))
	for rows.Next() {
		var id string
		var atBats, hits, doubles, triples, homeRuns, strikeouts int
		if err := rows.Scan(&id, &atBats, &hits, &doubles, &triples, &homeRuns, &strikeouts); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		byID[id] = players.NewStats(atBats, hits, doubles, triples, homeRuns, strikeouts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}

	for i, id := range ids {
		if st, ok := byID[id]; ok {
			stats := st
			out[i] = &stats
		}
	}
	return out, nil
}

// AddPlayer inserts one people row.
func (s *Store) AddPlayer(ctx context.Context, p players.Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (player_id, first_name, last_name, birth_year, birth_country)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.FirstName, p.LastName, p.BirthYear, p.BirthCountry,
	)
	if err != nil {
		return fmt.Errorf("insert player %s: %w", p.ID, err)
	}
	return nil
}

// AddBattingLine inserts one season's counting line.
func (s *Store) AddBattingLine(ctx context.Context, line players.BattingLine) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batting (player_id, season, at_bats, strikeouts, doubles, triples, home_runs, hits)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		line.PlayerID, line.Season, line.AtBats, line.Strikeouts, line.Doubles, line.Triples, line.HomeRuns, line.Hits,
	)
	if err != nil {
		return fmt.Errorf("insert batting line for %s: %w", line.PlayerID, err)
	}
	return nil
}
