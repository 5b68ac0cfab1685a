package lineups

import "fmt"

// Position is one of the nine fixed defensive slots a player may occupy.
type Position string

const (
	Pitcher     Position = "pitcher"
	Catcher     Position = "catcher"
	FirstBase   Position = "firstBase"
	SecondBase  Position = "secondBase"
	ThirdBase   Position = "thirdBase"
	Shortstop   Position = "shortstop"
	LeftField   Position = "leftField"
	CenterField Position = "centerField"
	RightField  Position = "rightField"
)

// Positions returns the nine positions in canonical order.
func Positions() []Position {
	return []Position{
		Pitcher,
		Catcher,
		FirstBase,
		SecondBase,
		ThirdBase,
		Shortstop,
		LeftField,
		CenterField,
		RightField,
	}
}

// ParsePosition validates a raw position key against the closed set.
func ParsePosition(raw string) (Position, error) {
	for _, p := range Positions() {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown position %q", raw)
}

// Lineup is an identifier plus at most one player per position. Positions
// missing from Slots are unassigned; the shape always spans all nine slots.
type Lineup struct {
	ID    int64               `json:"lineupId"`
	Slots map[Position]string `json:"slots"`
}

// NewLineup returns an empty lineup shape for id.
func NewLineup(id int64) Lineup {
	return Lineup{ID: id, Slots: make(map[Position]string)}
}

// PlayerID returns the assignment at pos when present.
func (l Lineup) PlayerID(pos Position) (string, bool) {
	id, ok := l.Slots[pos]
	return id, ok
}
