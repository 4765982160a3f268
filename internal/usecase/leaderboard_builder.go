package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/kickstats/internal/domain/friend"
	"github.com/riskibarqy/kickstats/internal/domain/leaderboard"
	"github.com/riskibarqy/kickstats/internal/domain/profile"
	"github.com/riskibarqy/kickstats/internal/domain/stats"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// LeaderboardBuilder assembles the friends-scoped ranking of one player for one season.
type LeaderboardBuilder struct {
	friendRepo  friend.Repository
	profileRepo profile.Repository
	statsRepo   stats.Repository
}

func NewLeaderboardBuilder(
	friendRepo friend.Repository,
	profileRepo profile.Repository,
	statsRepo stats.Repository,
) *LeaderboardBuilder {
	return &LeaderboardBuilder{
		friendRepo:  friendRepo,
		profileRepo: profileRepo,
		statsRepo:   statsRepo,
	}
}

func (b *LeaderboardBuilder) Build(ctx context.Context, playerID, seasonID string, policy leaderboard.Policy) (leaderboard.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardBuilder.Build", playerSeasonAttrs(playerID, seasonID)...)
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	seasonID = strings.TrimSpace(seasonID)
	if playerID == "" {
		return leaderboard.Result{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if seasonID == "" {
		return leaderboard.Result{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	friendIDs, err := b.friendRepo.GetFriendIDs(ctx, playerID)
	if err != nil {
		return leaderboard.Result{}, failSpan(span, fmt.Errorf("%w: get friend ids player=%s: %w", ErrDependencyUnavailable, playerID, err))
	}

	candidates := candidateIDs(playerID, friendIDs)
	span.SetAttributes(
		attribute.String("leaderboard.policy", policy.Name),
		attribute.Int("leaderboard.candidates", len(candidates)),
	)
	if len(candidates) == 0 {
		return leaderboard.Result{Policy: policy.Name, Entries: []leaderboard.Entry{}}, nil
	}

	var (
		profiles map[string]profile.Profile
		rawByID  map[string]stats.RawTotals
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := b.profileRepo.GetByIDs(ctx, candidates)
		if err != nil {
			return fmt.Errorf("%w: get profiles: %w", ErrDependencyUnavailable, err)
		}
		profiles = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := b.statsRepo.GetSeasonTotals(ctx, candidates, seasonID)
		if err != nil {
			return fmt.Errorf("%w: get season totals season=%s: %w", ErrDependencyUnavailable, seasonID, err)
		}
		rawByID = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return leaderboard.Result{}, err
	}

	if _, ok := profiles[playerID]; !ok {
		return leaderboard.Result{}, fmt.Errorf("%w: player profile not found: %s", ErrNotFound, playerID)
	}

	entries := make([]leaderboard.Entry, 0, len(candidates))
	for _, id := range candidates {
		item, ok := profiles[id]
		if !ok {
			// friend rows can outlive the profile they point to
			continue
		}
		totals := stats.Normalize(rawByID[id])
		entries = append(entries, leaderboard.NewEntry(policy, playerFromProfile(item), totals))
	}
	leaderboard.Rank(entries)

	return leaderboard.Result{Policy: policy.Name, Entries: entries}, nil
}

func candidateIDs(playerID string, friendIDs []string) []string {
	ids := make([]string, 0, len(friendIDs)+1)
	ids = append(ids, playerID)
	return uniqueTrimmed(append(ids, friendIDs...))
}

func playerFromProfile(p profile.Profile) leaderboard.Player {
	return leaderboard.Player{
		ID:        p.ID,
		Username:  p.Username,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Position:  p.Position,
	}
}
