package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/kickstats/internal/domain/friend"
	"github.com/riskibarqy/kickstats/internal/infrastructure/repository/memory"
)

var seedSeasons = map[string]string{
	memory.SeasonIDSpring2026: "Spring 2026",
}

var seedTeams = map[string]string{
	memory.TeamIDRiverHawks: "River Hawks",
	memory.TeamIDNorthStars: "North Stars",
}

// BootstrapSeed loads the demo roster into an empty database. It does nothing when any
// profile already exists. Stat lines go through stats so games and team links are
// resolved like live writes.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, stats *StatsRepository) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM profiles`); err != nil {
		return fmt.Errorf("count profiles for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for id, name := range seedSeasons {
		if err := execNamed(ctx, tx, `
INSERT INTO seasons (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO NOTHING`, map[string]any{"id": id, "name": name}); err != nil {
			return fmt.Errorf("seed season %s: %w", id, err)
		}
	}

	for id, name := range seedTeams {
		if err := execNamed(ctx, tx, `
INSERT INTO teams (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO NOTHING`, map[string]any{"id": id, "name": name}); err != nil {
			return fmt.Errorf("seed team %s: %w", id, err)
		}
	}

	for _, p := range memory.SeedProfiles() {
		if err := execNamed(ctx, tx, `
INSERT INTO profiles (id, username, full_name, avatar_url, position)
VALUES (:id, :username, :full_name, :avatar_url, :position)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         p.ID,
			"username":   p.Username,
			"full_name":  p.FullName,
			"avatar_url": p.AvatarURL,
			"position":   p.Position,
		}); err != nil {
			return fmt.Errorf("seed profile %s: %w", p.ID, err)
		}
	}

	for _, pair := range memory.SeedFriendships() {
		a, b := friend.OrderedPair(pair[0], pair[1])
		if err := execNamed(ctx, tx, `
INSERT INTO player_friends (player_id, friend_id)
VALUES (:player_id, :friend_id)
ON CONFLICT (player_id, friend_id) DO NOTHING`, map[string]any{"player_id": a, "friend_id": b}); err != nil {
			return fmt.Errorf("seed friendship %s-%s: %w", a, b, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	for i, line := range memory.SeedGameStats() {
		if _, err := stats.RecordGameStat(ctx, line); err != nil {
			return fmt.Errorf("seed game stat %d player=%s: %w", i, line.PlayerID, err)
		}
	}

	return nil
}

func execNamed(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...)
	return err
}
