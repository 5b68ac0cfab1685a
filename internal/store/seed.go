package store

import (
	"context"
	"fmt"

	"baseball-graph-service/internal/domain/players"
	"baseball-graph-service/internal/logging"
)

// SamplePlayers is the demo roster loaded on first boot.
func SamplePlayers() []players.Player {
	return []players.Player{
		{ID: "1", FirstName: "Andy", LastName: "Anderson", BirthYear: 2000, BirthCountry: "CAN"},
		{ID: "2", FirstName: "Bob", LastName: "Ball", BirthYear: 2001, BirthCountry: "CAN"},
		{ID: "3", FirstName: "Bill", LastName: "Baker", BirthYear: 2002, BirthCountry: "USA"},
		{ID: "4", FirstName: "Hank", LastName: "Harrison", BirthYear: 1994, BirthCountry: "USA"},
		{ID: "5", FirstName: "Pedro", LastName: "Prado", BirthYear: 1998, BirthCountry: "DOM"},
		{ID: "6", FirstName: "Sandy", LastName: "Sutton", BirthYear: 1996, BirthCountry: "USA"},
	}
}

// SampleBattingLines returns per-season counting lines for the demo roster.
// Player 6 has none, so their stats read as absent.
func SampleBattingLines() []players.BattingLine {
	return []players.BattingLine{
		{PlayerID: "1", Season: 2020, AtBats: 10, Doubles: 20, Triples: 2, HomeRuns: 2, Hits: 3, Strikeouts: 4},
		{PlayerID: "1", Season: 2021, AtBats: 90, Doubles: 21, Triples: 3, HomeRuns: 8, Hits: 7, Strikeouts: 6},
		{PlayerID: "2", Season: 2021, AtBats: 400, Strikeouts: 80, Doubles: 20, Triples: 2, HomeRuns: 15, Hits: 110},
		{PlayerID: "3", Season: 2021, AtBats: 350, Strikeouts: 60, Doubles: 25, Triples: 1, HomeRuns: 9, Hits: 95},
		{PlayerID: "4", Season: 2020, AtBats: 500, Strikeouts: 110, Doubles: 30, Triples: 3, HomeRuns: 40, Hits: 150},
		{PlayerID: "4", Season: 2021, AtBats: 450, Strikeouts: 95, Doubles: 22, Triples: 1, HomeRuns: 35, Hits: 130},
		{PlayerID: "5", Season: 2021, AtBats: 50, Strikeouts: 5, Doubles: 4, Triples: 0, HomeRuns: 1, Hits: 20},
	}
}

// SeedIfEmpty loads the sample dataset when the people table is empty and
// reports whether it did. Seeding runs in one transaction so a partial load
// never survives a failure.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&count); err != nil {
		return false, fmt.Errorf("count people: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	roster := SamplePlayers()
	for _, p := range roster {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO people (player_id, first_name, last_name, birth_year, birth_country)
			 VALUES (?, ?, ?, ?, ?)`,
			p.ID, p.FirstName, p.LastName, p.BirthYear, p.BirthCountry,
		); err != nil {
			return false, fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}
	lines := SampleBattingLines()
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO batting (player_id, season, at_bats, strikeouts, doubles, triples, home_runs, hits)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			line.PlayerID, line.Season, line.AtBats, line.Strikeouts, line.Doubles, line.Triples, line.HomeRuns, line.Hits,
		); err != nil {
			return false, fmt.Errorf("seed batting for %s: %w", line.PlayerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}

	logging.Info(s.logger, "seeded sample data",
		logging.FieldCount, len(roster),
	)
	return true, nil
}
