package profile

import "context"

type Repository interface {
	// GetByIDs returns the profiles that exist among ids. Unknown ids are absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]Profile, error)
	// GetByUsername returns ErrNotFound for an unknown username.
	GetByUsername(ctx context.Context, username string) (Profile, error)
}
