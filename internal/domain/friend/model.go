package friend

import "errors"

var (
	ErrPlayerIDRequired   = errors.New("player id is required")
	ErrSelfFriendship     = errors.New("player cannot befriend themselves")
	ErrFriendshipExists   = errors.New("friendship already exists")
	ErrFriendshipNotFound = errors.New("friendship not found")
)

// OrderedPair returns the pair with the lexically smaller id first. Friendships are
// stored once per pair in this order.
func OrderedPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
