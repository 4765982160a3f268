package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/kickstats/internal/domain/profile"
	basecache "github.com/riskibarqy/kickstats/internal/platform/cache"
)

type countingProfileRepo struct {
	calls atomic.Int32
	err   error
}

func (r *countingProfileRepo) GetByIDs(_ context.Context, ids []string) (map[string]profile.Profile, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]profile.Profile, len(ids))
	for _, id := range ids {
		out[id] = profile.Profile{ID: id, FullName: "Player " + id}
	}
	return out, nil
}

func (r *countingProfileRepo) GetByUsername(_ context.Context, username string) (profile.Profile, error) {
	r.calls.Add(1)
	if username == "" {
		return profile.Profile{}, profile.ErrNotFound
	}
	return profile.Profile{ID: "id-" + username, Username: username}, nil
}

func TestProfileRepository_CachesByIDSet(t *testing.T) {
	t.Parallel()

	next := &countingProfileRepo{}
	repo := NewProfileRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.GetByIDs(ctx, []string{"p2", "p1"})
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	first["p1"] = profile.Profile{ID: "mutated"}

	second, err := repo.GetByIDs(ctx, []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if next.calls.Load() != 1 {
		t.Fatalf("expected one underlying call, got %d", next.calls.Load())
	}
	if second["p1"].ID != "p1" {
		t.Fatalf("cached map must not be shared with callers: %+v", second["p1"])
	}
}

func TestProfileRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := &countingProfileRepo{err: errors.New("db down")}
	repo := NewProfileRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := repo.GetByIDs(context.Background(), []string{"p1"}); err == nil {
			t.Fatalf("expected error")
		}
	}
	if next.calls.Load() != 2 {
		t.Fatalf("expected every failed load to hit the repository, got %d", next.calls.Load())
	}
}

func TestProfileByIDsKey(t *testing.T) {
	t.Parallel()

	if got := profileByIDsKey([]string{"b", "a", "b"}); got != "profile:ids:a,b" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestProfileRepository_GetByUsernamePassesThrough(t *testing.T) {
	t.Parallel()

	next := &countingProfileRepo{}
	repo := NewProfileRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for range 2 {
		got, err := repo.GetByUsername(ctx, "leo_mid")
		if err != nil || got.ID != "id-leo_mid" {
			t.Fatalf("unexpected lookup: %+v %v", got, err)
		}
	}
	if next.calls.Load() != 2 {
		t.Fatalf("username lookups must reach the repository, calls=%d", next.calls.Load())
	}
	if _, err := repo.GetByUsername(ctx, ""); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected profile.ErrNotFound, got %v", err)
	}
}
