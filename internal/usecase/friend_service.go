package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/kickstats/internal/domain/friend"
	"github.com/riskibarqy/kickstats/internal/domain/profile"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
)

// FriendService manages the friend graph that decides who appears on a leaderboard.
// Every committed change triggers a full leaderboard flush.
type FriendService struct {
	friendRepo  friend.Repository
	profileRepo profile.Repository
	invalidator LeaderboardInvalidator
	logger      *logging.Logger
}

func NewFriendService(friendRepo friend.Repository, profileRepo profile.Repository, invalidator LeaderboardInvalidator, logger *logging.Logger) *FriendService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FriendService{
		friendRepo:  friendRepo,
		profileRepo: profileRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// ListFriends returns the profiles of playerID's friends ordered by username. Friends
// without a profile are skipped.
func (s *FriendService) ListFriends(ctx context.Context, playerID string) ([]profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FriendService.ListFriends", spanPlayerKey.String(playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	ids, err := s.friendRepo.GetFriendIDs(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%w: get friend ids player=%s: %w", ErrDependencyUnavailable, playerID, err)
	}
	span.SetAttributes(attribute.Int("friend.count", len(ids)))
	if len(ids) == 0 {
		return []profile.Profile{}, nil
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: get friend profiles player=%s: %w", ErrDependencyUnavailable, playerID, err)
	}

	out := make([]profile.Profile, 0, len(profiles))
	for _, id := range ids {
		if p, ok := profiles[id]; ok {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b profile.Profile) int {
		return cmp.Or(cmp.Compare(a.Username, b.Username), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// AddFriend links playerID with the player behind friendUsername and returns that
// player's profile.
func (s *FriendService) AddFriend(ctx context.Context, playerID, friendUsername string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FriendService.AddFriend", spanPlayerKey.String(playerID))
	defer span.End()

	playerID, target, err := s.resolvePair(ctx, playerID, friendUsername)
	if err != nil {
		return profile.Profile{}, err
	}

	if err := s.friendRepo.AddFriend(ctx, playerID, target.ID); err != nil {
		return profile.Profile{}, failSpan(span, mapFriendError(err, "add", playerID, target.ID))
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "friend added", "player_id", playerID, "friend_id", target.ID)
	return target, nil
}

// RemoveFriend unlinks playerID and the player behind friendUsername.
func (s *FriendService) RemoveFriend(ctx context.Context, playerID, friendUsername string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FriendService.RemoveFriend", spanPlayerKey.String(playerID))
	defer span.End()

	playerID, target, err := s.resolvePair(ctx, playerID, friendUsername)
	if err != nil {
		return err
	}

	if err := s.friendRepo.RemoveFriend(ctx, playerID, target.ID); err != nil {
		return failSpan(span, mapFriendError(err, "remove", playerID, target.ID))
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "friend removed", "player_id", playerID, "friend_id", target.ID)
	return nil
}

func (s *FriendService) resolvePair(ctx context.Context, playerID, friendUsername string) (string, profile.Profile, error) {
	playerID = strings.TrimSpace(playerID)
	friendUsername = strings.TrimSpace(friendUsername)
	if playerID == "" || friendUsername == "" {
		return "", profile.Profile{}, fmt.Errorf("%w: player id and friend username are required", ErrInvalidInput)
	}

	target, err := s.profileRepo.GetByUsername(ctx, friendUsername)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return "", profile.Profile{}, fmt.Errorf("%w: friend username=%s", ErrNotFound, friendUsername)
	case err != nil:
		return "", profile.Profile{}, fmt.Errorf("%w: get profile username=%s: %w", ErrDependencyUnavailable, friendUsername, err)
	}
	if target.ID == playerID {
		return "", profile.Profile{}, fmt.Errorf("%w: %w", ErrInvalidInput, friend.ErrSelfFriendship)
	}

	owners, err := s.profileRepo.GetByIDs(ctx, []string{playerID})
	if err != nil {
		return "", profile.Profile{}, fmt.Errorf("%w: get profile player=%s: %w", ErrDependencyUnavailable, playerID, err)
	}
	if _, ok := owners[playerID]; !ok {
		return "", profile.Profile{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return playerID, target, nil
}

func (s *FriendService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateLeaderboards(context.WithoutCancel(ctx))
	}
}

func mapFriendError(err error, op, playerID, friendID string) error {
	switch {
	case errors.Is(err, friend.ErrFriendshipExists):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, friend.ErrFriendshipNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, friend.ErrSelfFriendship), errors.Is(err, friend.ErrPlayerIDRequired):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %s friend player=%s friend=%s: %w", ErrDependencyUnavailable, op, playerID, friendID, err)
	}
}
