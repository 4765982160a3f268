package profile

import "errors"

var ErrNotFound = errors.New("profile not found")

// Profile holds the display fields of a player. AvatarURL and Position are optional.
type Profile struct {
	ID        string
	Username  string
	FullName  string
	AvatarURL *string
	Position  *string
}
