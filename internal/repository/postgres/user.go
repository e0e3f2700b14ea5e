package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.UserRepository = (*UserDB)(nil)

// UserDB is the user repository.
type UserDB struct {
	pool *pgxpool.Pool
}

// List maps rows onto model.User through its `db` struct tags.
func (r *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("postgres: collecting users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (r *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT username, name, avatar_url FROM users WHERE username = $1`, username,
	).Scan(&u.Username, &u.Name, &u.AvatarURL)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("User", username)
		}
		return nil, fmt.Errorf("postgres: getting user %s: %w", username, err)
	}
	return &u, nil
}
