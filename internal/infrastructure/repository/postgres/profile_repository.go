package postgres

import (
	"context"
	"database/sql"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/kickstats/internal/domain/profile"
	qb "github.com/riskibarqy/kickstats/internal/platform/querybuilder"
)

var _ profile.Repository = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []string) (map[string]profile.Profile, error) {
	out := make(map[string]profile.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("id", "username", "full_name", "avatar_url", "position").
		From("profiles").
		Where(qb.Any("id", ids)).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build get profiles query")
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "get profiles count=%d", len(ids))
	}

	for _, row := range rows {
		out[row.ID] = row.toDomain()
	}
	return out, nil
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (profile.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return profile.Profile{}, profile.ErrNotFound
	}

	query, args, err := qb.Select("id", "username", "full_name", "avatar_url", "position").
		From("profiles").
		Where(qb.Eq("username", username)).
		Limit(1).
		ToSQL()
	if err != nil {
		return profile.Profile{}, crerr.Wrap(err, "build get profile by username query")
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if crerr.Is(err, sql.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, crerr.Wrapf(err, "get profile username=%s", username)
	}
	return row.toDomain(), nil
}
