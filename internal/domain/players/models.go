package players

import "strings"

// Player is one stored people row, keyed by the externally assigned identifier.
type Player struct {
	ID           string `json:"playerId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BirthYear    int    `json:"birthYear"`
	BirthCountry string `json:"birthCountry"`
}

// Profile returns the exposed biographical view of the row.
func (p Player) Profile() Profile {
	return Profile{
		Name:    p.FirstName + " " + p.LastName,
		Country: p.BirthCountry,
		Year:    p.BirthYear,
	}
}

// Profile is the immutable biographical record for a player. Name is the
// stored first and last name joined by a single space.
type Profile struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Year    int    `json:"year"`
}

// BattingLine is one season's counting line for a player, as stored.
type BattingLine struct {
	PlayerID   string `json:"playerId"`
	Season     int    `json:"season"`
	AtBats     int    `json:"atBats"`
	Strikeouts int    `json:"strikeouts"`
	Doubles    int    `json:"doubles"`
	Triples    int    `json:"triples"`
	HomeRuns   int    `json:"homeRuns"`
	Hits       int    `json:"hits"`
}

// Stats is the aggregate batting view derived from all of a player's lines.
// It is computed, never stored.
type Stats struct {
	AtBats             int     `json:"atBats"`
	Hits               int     `json:"hits"`
	HomeRuns           int     `json:"homeRuns"`
	Strikeouts         int     `json:"strikeouts"`
	BattingAverage     float64 `json:"battingAverage"`
	SluggingPercentage float64 `json:"sluggingPercentage"`
}

// NewStats derives the aggregate view from summed counting columns.
// Average and slugging divide by at-bats without guarding zero; a zero
// at-bat aggregate yields non-finite values.
func NewStats(atBats, hits, doubles, triples, homeRuns, strikeouts int) Stats {
	singles := hits - doubles - triples - homeRuns
	ab := float64(atBats)
	return Stats{
		AtBats:             atBats,
		Hits:               hits,
		HomeRuns:           homeRuns,
		Strikeouts:         strikeouts,
		BattingAverage:     float64(hits) / ab,
		SluggingPercentage: (float64(singles) + 2*float64(doubles) + 3*float64(triples) + 4*float64(homeRuns)) / ab,
	}
}

// Match is the dual candidate form for resolving one free-form query string
// to a player: the raw string taken verbatim as an identifier, plus an
// optional first/last name prefix pair derived from its tokens. The
// identifier form always participates; the name form only when ByName is set.
type Match struct {
	ID          string
	FirstPrefix string
	LastPrefix  string
	ByName      bool
}

// ParseMatch splits a query on single spaces and builds the candidate forms.
// One token becomes a first-name prefix with the last name unconstrained; two
// tokens become a first/last prefix pair. Empty input and queries of three or
// more tokens construct no name candidate and match by identifier only.
func ParseMatch(query string) Match {
	m := Match{ID: query}
	if query == "" {
		return m
	}
	tokens := strings.Split(query, " ")
	switch len(tokens) {
	case 1:
		m.FirstPrefix = tokens[0]
		m.ByName = true
	case 2:
		m.FirstPrefix = tokens[0]
		m.LastPrefix = tokens[1]
		m.ByName = true
	}
	return m
}
