package store

import (
	"context"
	"fmt"
	"time"

	"baseball-graph-service/internal/domain/lineups"
	"baseball-graph-service/internal/domain/players"
)

// Lineup reads the assignments for lineupID and returns the full nine-slot
// shape. Existence is not verified: an unknown identifier yields the
// all-absent shape keyed by that identifier.
func (s *Store) Lineup(ctx context.Context, lineupID int64) (l lineups.Lineup, err error) {
	start := time.Now()
	defer func() { s.observe(queryLineup, start, err) }()

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, player_id FROM lineup_assignments WHERE lineup_id = ?`,
		lineupID,
	)
	if err != nil {
		return lineups.Lineup{}, fmt.Errorf("fetch lineup %d: %w", lineupID, err)
	}
	defer rows.Close()

	l = lineups.NewLineup(lineupID)
	for rows.Next() {
		var rawPos, playerID string
		if err := rows.Scan(&rawPos, &playerID); err != nil {
			return lineups.Lineup{}, fmt.Errorf("scan assignment: %w", err)
		}
		pos, err := lineups.ParsePosition(rawPos)
		if err != nil {
			return lineups.Lineup{}, fmt.Errorf("lineup %d: %w", lineupID, err)
		}
		l.Slots[pos] = playerID
	}
	if err := rows.Err(); err != nil {
		return lineups.Lineup{}, fmt.Errorf("fetch lineup %d: %w", lineupID, err)
	}
	return l, nil
}

// CreateLineup inserts a fresh row and returns its shape, all positions
// absent. Identifiers are assigned by the store and increase monotonically.
func (s *Store) CreateLineup(ctx context.Context) (l lineups.Lineup, err error) {
	start := time.Now()
	defer func() { s.observe(queryCreateLineup, start, err) }()

	res, err := s.db.ExecContext(ctx, `INSERT INTO lineups DEFAULT VALUES`)
	if err != nil {
		return lineups.Lineup{}, fmt.Errorf("create lineup: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return lineups.Lineup{}, fmt.Errorf("create lineup id: %w", err)
	}
	return s.Lineup(ctx, id)
}

// AssignPlayer resolves match against stored players and upserts the winner
// at (lineupID, pos). The single statement prefers a literal identifier match
// over the name-prefix pair, caps at one row, and writes nothing when neither
// form matches or the lineup does not exist — a silent non-match leaves any
// existing assignment untouched. INSERT OR REPLACE displaces conflicts on
// both unique keys, so a reassigned position drops its old occupant and a
// reassigned player vacates their old position in the same statement.
func (s *Store) AssignPlayer(ctx context.Context, lineupID int64, pos lineups.Position, match players.Match) (err error) {
	start := time.Now()
	defer func() { s.observe(queryAssignPlayer, start, err) }()

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO lineup_assignments (lineup_id, position, player_id)
		SELECT l.lineup_id, ?, p.player_id
		FROM lineups l, people p
		WHERE l.lineup_id = ?
		  AND (p.player_id = ? OR (? AND p.first_name LIKE ? ESCAPE '\' AND p.last_name LIKE ? ESCAPE '\'))
		ORDER BY (p.player_id = ?) DESC, p.first_name, p.last_name
		LIMIT 1`,
		string(pos), lineupID,
		match.ID, match.ByName, prefixPattern(match.FirstPrefix), prefixPattern(match.LastPrefix),
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("assign %s on lineup %d: %w", pos, lineupID, err)
	}
	return nil
}
