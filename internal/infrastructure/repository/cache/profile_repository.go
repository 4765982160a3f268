package cache

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/riskibarqy/kickstats/internal/domain/profile"
	basecache "github.com/riskibarqy/kickstats/internal/platform/cache"
)

var _ profile.Repository = (*ProfileRepository)(nil)

// ProfileRepository memoizes profile lookups. Concurrent loads of the same id set share
// one call to the underlying repository.
type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []string) (map[string]profile.Profile, error) {
	v, err := r.cache.GetOrLoad(ctx, profileByIDsKey(ids), func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return maps.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.(map[string]profile.Profile)
	out := maps.Clone(items)
	if out == nil {
		out = make(map[string]profile.Profile)
	}
	return out, nil
}

func profileByIDsKey(ids []string) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return "profile:ids:" + strings.Join(slices.Compact(sorted), ",")
}

// GetByUsername is not cached. Friend writes resolve usernames and must see new profiles.
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (profile.Profile, error) {
	return r.next.GetByUsername(ctx, username)
}
