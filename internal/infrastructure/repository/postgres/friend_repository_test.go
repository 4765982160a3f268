package postgres

import (
	"errors"
	"testing"

	"github.com/riskibarqy/kickstats/internal/domain/friend"
	qb "github.com/riskibarqy/kickstats/internal/platform/querybuilder"
)

func TestOrderedPairModel(t *testing.T) {
	got, err := orderedPairModel(" player-maya ", "player-leo")
	if err != nil {
		t.Fatalf("ordered pair: %v", err)
	}
	if got.PlayerID != "player-leo" || got.FriendID != "player-maya" {
		t.Fatalf("expected smaller id first, got %+v", got)
	}

	if _, err := orderedPairModel("p1", " "); !errors.Is(err, friend.ErrPlayerIDRequired) {
		t.Fatalf("expected ErrPlayerIDRequired, got %v", err)
	}
	if _, err := orderedPairModel("p1", "p1"); !errors.Is(err, friend.ErrSelfFriendship) {
		t.Fatalf("expected ErrSelfFriendship, got %v", err)
	}
}

func TestFriendPairInsertQuery(t *testing.T) {
	pair, err := orderedPairModel("p2", "p1")
	if err != nil {
		t.Fatalf("ordered pair: %v", err)
	}

	query, args, err := qb.InsertModel("player_friends", pair, "ON CONFLICT (player_id, friend_id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	want := "INSERT INTO player_friends (player_id, friend_id) VALUES ($1, $2) ON CONFLICT (player_id, friend_id) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "p1" || args[1] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
