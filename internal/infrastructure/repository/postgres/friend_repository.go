package postgres

import (
	"context"
	"slices"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/kickstats/internal/domain/friend"
	qb "github.com/riskibarqy/kickstats/internal/platform/querybuilder"
)

var _ friend.Repository = (*FriendRepository)(nil)

type FriendRepository struct {
	db *sqlx.DB
}

func NewFriendRepository(db *sqlx.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

func (r *FriendRepository) GetFriendIDs(ctx context.Context, playerID string) ([]string, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, friend.ErrPlayerIDRequired
	}

	query, args, err := qb.Select("player_id", "friend_id").
		From("player_friends").
		Where(qb.Or(qb.Eq("player_id", playerID), qb.Eq("friend_id", playerID))).
		OrderBy("player_id", "friend_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build get friend ids query")
	}

	var rows []friendPairModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "get friend ids player=%s", playerID)
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.PlayerID == playerID {
			out = append(out, row.FriendID)
			continue
		}
		out = append(out, row.PlayerID)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (r *FriendRepository) AddFriend(ctx context.Context, playerID, friendID string) error {
	pair, err := orderedPairModel(playerID, friendID)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("player_friends", pair, "ON CONFLICT (player_id, friend_id) DO NOTHING")
	if err != nil {
		return crerr.Wrap(err, "build add friend query")
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "add friend player=%s friend=%s", pair.PlayerID, pair.FriendID)
	}
	if n, err := res.RowsAffected(); err != nil {
		return crerr.Wrap(err, "add friend rows affected")
	} else if n == 0 {
		return friend.ErrFriendshipExists
	}
	return nil
}

func (r *FriendRepository) RemoveFriend(ctx context.Context, playerID, friendID string) error {
	pair, err := orderedPairModel(playerID, friendID)
	if err != nil {
		return err
	}

	query, args, err := qb.DeleteFrom("player_friends").
		Where(qb.Eq("player_id", pair.PlayerID), qb.Eq("friend_id", pair.FriendID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build remove friend query")
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "remove friend player=%s friend=%s", pair.PlayerID, pair.FriendID)
	}
	if n, err := res.RowsAffected(); err != nil {
		return crerr.Wrap(err, "remove friend rows affected")
	} else if n == 0 {
		return friend.ErrFriendshipNotFound
	}
	return nil
}

// orderedPairModel matches the player_id < friend_id check on player_friends.
func orderedPairModel(playerID, friendID string) (friendPairModel, error) {
	playerID = strings.TrimSpace(playerID)
	friendID = strings.TrimSpace(friendID)
	switch {
	case playerID == "" || friendID == "":
		return friendPairModel{}, friend.ErrPlayerIDRequired
	case playerID == friendID:
		return friendPairModel{}, friend.ErrSelfFriendship
	}
	first, second := friend.OrderedPair(playerID, friendID)
	return friendPairModel{PlayerID: first, FriendID: second}, nil
}
