package teststubs

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	domainlineups "baseball-graph-service/internal/domain/lineups"
	"baseball-graph-service/internal/domain/players"
)

// StubGateway is an in-memory test double for the storage gateway. It
// implements the store interfaces of the app services and the graph loaders
// with the same matching and alignment contracts, and records every batched
// fetch so tests can assert on coalescing.
type StubGateway struct {
	mu      sync.Mutex
	Players []players.Player
	Batting map[string]players.Stats
	Lineups map[int64]map[domainlineups.Position]string
	nextID  int64

	// Err, when set, fails every call. ProfilesErr fails only the profile
	// batch fetch, leaving searches healthy.
	Err         error
	ProfilesErr error

	ProfileCalls   atomic.Int32
	StatsCalls     atomic.Int32
	ProfileBatches [][]string
	StatsBatches   [][]string
}

// NewStubGateway returns a gateway holding the given roster, no batting
// lines, and no lineups.
func NewStubGateway(roster ...players.Player) *StubGateway {
	return &StubGateway{
		Players: roster,
		Batting: make(map[string]players.Stats),
		Lineups: make(map[int64]map[domainlineups.Position]string),
		nextID:  1,
	}
}

// FindPlayers matches both name prefixes case-sensitively and returns ids
// ordered by first then last name.
func (s *StubGateway) FindPlayers(ctx context.Context, firstPrefix, lastPrefix string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]players.Player, 0, len(s.Players))
	for _, p := range s.Players {
		if strings.HasPrefix(p.FirstName, firstPrefix) && strings.HasPrefix(p.LastName, lastPrefix) {
			matched = append(matched, p)
		}
	}
	sortByName(matched)
	ids := make([]string, len(matched))
	for i, p := range matched {
		ids[i] = p.ID
	}
	return ids, nil
}

// Profiles aligns output with ids, nil for unknown identifiers.
func (s *StubGateway) Profiles(ctx context.Context, ids []string) ([]*players.Profile, error) {
	s.ProfileCalls.Add(1)
	s.mu.Lock()
	s.ProfileBatches = append(s.ProfileBatches, append([]string(nil), ids...))
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ProfilesErr != nil {
		return nil, s.ProfilesErr
	}

	out := make([]*players.Profile, len(ids))
	for i, id := range ids {
		if p, ok := s.playerByID(id); ok {
			profile := p.Profile()
			out[i] = &profile
		}
	}
	return out, nil
}

// Stats aligns output with ids, nil for players without batting entries.
func (s *StubGateway) Stats(ctx context.Context, ids []string) ([]*players.Stats, error) {
	s.StatsCalls.Add(1)
	s.mu.Lock()
	s.StatsBatches = append(s.StatsBatches, append([]string(nil), ids...))
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*players.Stats, len(ids))
	for i, id := range ids {
		s.mu.Lock()
		stats, ok := s.Batting[id]
		s.mu.Unlock()
		if ok {
			copied := stats
			out[i] = &copied
		}
	}
	return out, nil
}

// Lineup returns the stored slots for lineupID, or the all-absent shape when
// the identifier is unknown.
func (s *StubGateway) Lineup(ctx context.Context, lineupID int64) (domainlineups.Lineup, error) {
	if s.Err != nil {
		return domainlineups.Lineup{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l := domainlineups.NewLineup(lineupID)
	for pos, id := range s.Lineups[lineupID] {
		l.Slots[pos] = id
	}
	return l, nil
}

// CreateLineup registers a fresh empty lineup with the next identifier.
func (s *StubGateway) CreateLineup(ctx context.Context) (domainlineups.Lineup, error) {
	if s.Err != nil {
		return domainlineups.Lineup{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.Lineups[id] = make(map[domainlineups.Position]string)
	return domainlineups.NewLineup(id), nil
}

// AssignPlayer resolves match with the gateway's preference rules: literal
// identifier first, then the name-prefix pair, at most one winner. A
// non-match and an unknown lineup both write nothing.
func (s *StubGateway) AssignPlayer(ctx context.Context, lineupID int64, pos domainlineups.Position, match players.Match) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, ok := s.Lineups[lineupID]
	if !ok {
		return nil
	}
	id, ok := s.resolveMatch(match)
	if !ok {
		return nil
	}
	for existingPos, existingID := range slots {
		if existingID == id {
			delete(slots, existingPos)
		}
	}
	slots[pos] = id
	return nil
}

func (s *StubGateway) resolveMatch(match players.Match) (string, bool) {
	if _, ok := s.playerByIDLocked(match.ID); ok {
		return match.ID, true
	}
	if !match.ByName {
		return "", false
	}
	candidates := make([]players.Player, 0, len(s.Players))
	for _, p := range s.Players {
		if strings.HasPrefix(p.FirstName, match.FirstPrefix) && strings.HasPrefix(p.LastName, match.LastPrefix) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sortByName(candidates)
	return candidates[0].ID, true
}

func (s *StubGateway) playerByID(id string) (players.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerByIDLocked(id)
}

func (s *StubGateway) playerByIDLocked(id string) (players.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return players.Player{}, false
}

func sortByName(items []players.Player) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].FirstName != items[j].FirstName {
			return items[i].FirstName < items[j].FirstName
		}
		return items[i].LastName < items[j].LastName
	})
}
