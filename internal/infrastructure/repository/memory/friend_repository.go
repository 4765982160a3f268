package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/kickstats/internal/domain/friend"
)

// FriendRepository stores each pair once, smaller id first, and answers lookups from
// either side.
type FriendRepository struct {
	mu    sync.RWMutex
	pairs map[[2]string]struct{}
}

func NewFriendRepository(pairs [][2]string) *FriendRepository {
	r := &FriendRepository{pairs: make(map[[2]string]struct{}, len(pairs))}
	for _, p := range pairs {
		r.add(p[0], p[1])
	}
	return r
}

var _ friend.Repository = (*FriendRepository)(nil)

func (r *FriendRepository) AddFriend(_ context.Context, playerID, friendID string) error {
	key, err := pairKey(playerID, friendID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pairs[key]; exists {
		return friend.ErrFriendshipExists
	}
	r.pairs[key] = struct{}{}
	return nil
}

func (r *FriendRepository) RemoveFriend(_ context.Context, playerID, friendID string) error {
	key, err := pairKey(playerID, friendID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pairs[key]; !exists {
		return friend.ErrFriendshipNotFound
	}
	delete(r.pairs, key)
	return nil
}

func (r *FriendRepository) GetFriendIDs(_ context.Context, playerID string) ([]string, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, friend.ErrPlayerIDRequired
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for pair := range r.pairs {
		switch playerID {
		case pair[0]:
			out = append(out, pair[1])
		case pair[1]:
			out = append(out, pair[0])
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *FriendRepository) add(a, b string) {
	if key, err := pairKey(a, b); err == nil {
		r.pairs[key] = struct{}{}
	}
}

func pairKey(a, b string) ([2]string, error) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "" || b == "":
		return [2]string{}, friend.ErrPlayerIDRequired
	case a == b:
		return [2]string{}, friend.ErrSelfFriendship
	}
	first, second := friend.OrderedPair(a, b)
	return [2]string{first, second}, nil
}
