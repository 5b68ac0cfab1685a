package teststubs

import (
	"context"
	"errors"
	"testing"

	domainlineups "baseball-graph-service/internal/domain/lineups"
	"baseball-graph-service/internal/domain/players"
)

func sampleRoster() []players.Player {
	return []players.Player{
		{ID: "1", FirstName: "Andy", LastName: "Anderson", BirthYear: 2000, BirthCountry: "CAN"},
		{ID: "2", FirstName: "Bob", LastName: "Ball", BirthYear: 2001, BirthCountry: "CAN"},
		{ID: "3", FirstName: "Bill", LastName: "Baker", BirthYear: 2002, BirthCountry: "USA"},
	}
}

func TestStubGatewayFindPlayersOrdersByName(t *testing.T) {
	g := NewStubGateway(sampleRoster()...)

	ids, err := g.FindPlayers(context.Background(), "B", "B")
	if err != nil {
		t.Fatalf("find players: %v", err)
	}
	if len(ids) != 2 || ids[0] != "3" || ids[1] != "2" {
		t.Fatalf("expected [3 2], got %v", ids)
	}
}

func TestStubGatewayProfilesAlignAndTrackBatches(t *testing.T) {
	g := NewStubGateway(sampleRoster()...)

	out, err := g.Profiles(context.Background(), []string{"1", "999"})
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if out[0] == nil || out[0].Name != "Andy Anderson" {
		t.Fatalf("expected profile for id 1, got %+v", out[0])
	}
	if out[1] != nil {
		t.Fatalf("expected nil for unknown id, got %+v", out[1])
	}
	if g.ProfileCalls.Load() != 1 || len(g.ProfileBatches) != 1 {
		t.Fatalf("expected one tracked batch")
	}
}

func TestStubGatewayAssignPrefersIdentifier(t *testing.T) {
	g := NewStubGateway(sampleRoster()...)
	ctx := context.Background()

	l, err := g.CreateLineup(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := g.AssignPlayer(ctx, l.ID, domainlineups.Catcher, players.ParseMatch("2")); err != nil {
		t.Fatalf("assign: %v", err)
	}

	got, err := g.Lineup(ctx, l.ID)
	if err != nil {
		t.Fatalf("lineup: %v", err)
	}
	if id, _ := got.PlayerID(domainlineups.Catcher); id != "2" {
		t.Fatalf("expected catcher 2, got %q", id)
	}
}

func TestStubGatewayAssignUnknownLineupIsNoOp(t *testing.T) {
	g := NewStubGateway(sampleRoster()...)
	ctx := context.Background()

	if err := g.AssignPlayer(ctx, 404, domainlineups.Catcher, players.ParseMatch("2")); err != nil {
		t.Fatalf("assign: %v", err)
	}
	got, err := g.Lineup(ctx, 404)
	if err != nil {
		t.Fatalf("lineup: %v", err)
	}
	if len(got.Slots) != 0 {
		t.Fatalf("expected no slots, got %v", got.Slots)
	}
}

func TestStubGatewayErrFailsEveryCall(t *testing.T) {
	g := NewStubGateway(sampleRoster()...)
	g.Err = errors.New("down")

	if _, err := g.FindPlayers(context.Background(), "", ""); !errors.Is(err, g.Err) {
		t.Fatalf("expected err passthrough, got %v", err)
	}
	if _, err := g.Profiles(context.Background(), []string{"1"}); !errors.Is(err, g.Err) {
		t.Fatalf("expected err passthrough, got %v", err)
	}
}
