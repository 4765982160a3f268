package postgres

import (
	"database/sql"

	"github.com/riskibarqy/kickstats/internal/domain/profile"
)

type profileTableModel struct {
	ID        string         `db:"id"`
	Username  string         `db:"username"`
	FullName  string         `db:"full_name"`
	AvatarURL sql.NullString `db:"avatar_url"`
	Position  sql.NullString `db:"position"`
}

func (m profileTableModel) toDomain() profile.Profile {
	return profile.Profile{
		ID:        m.ID,
		Username:  m.Username,
		FullName:  m.FullName,
		AvatarURL: nullStringPtr(m.AvatarURL),
		Position:  nullStringPtr(m.Position),
	}
}

type friendPairModel struct {
	PlayerID string `db:"player_id"`
	FriendID string `db:"friend_id"`
}
