package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/kickstats/internal/domain/profile"
)

var _ profile.Repository = (*ProfileRepository)(nil)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
}

func NewProfileRepository(profiles []profile.Profile) *ProfileRepository {
	index := make(map[string]profile.Profile, len(profiles))
	for _, p := range profiles {
		index[p.ID] = p
	}
	return &ProfileRepository{profiles: index}
}

func (r *ProfileRepository) GetByIDs(_ context.Context, ids []string) (map[string]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]profile.Profile, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *ProfileRepository) GetByUsername(_ context.Context, username string) (profile.Profile, error) {
	username = strings.TrimSpace(username)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.profiles {
		if username != "" && p.Username == username {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}
