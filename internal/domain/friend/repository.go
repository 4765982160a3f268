package friend

import "context"

type Repository interface {
	// GetFriendIDs resolves friends of playerID regardless of which column the pair was
	// stored in. An empty result is not an error.
	GetFriendIDs(ctx context.Context, playerID string) ([]string, error)
	// AddFriend stores the pair ordered. ErrFriendshipExists when it is already stored.
	AddFriend(ctx context.Context, playerID, friendID string) error
	// RemoveFriend deletes the pair in either order. ErrFriendshipNotFound when absent.
	RemoveFriend(ctx context.Context, playerID, friendID string) error
}
