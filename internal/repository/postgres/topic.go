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

var _ repository.TopicRepository = (*TopicDB)(nil)

// TopicDB is the topic repository.
type TopicDB struct {
	pool *pgxpool.Pool
}

func (r *TopicDB) List(ctx context.Context) ([]model.Topic, error) {
	rows, err := r.pool.Query(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing topics: %w", err)
	}

	topics, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Topic])
	if err != nil {
		return nil, fmt.Errorf("postgres: collecting topics: %w", err)
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	return topics, nil
}

func (r *TopicDB) GetBySlug(ctx context.Context, slug string) (*model.Topic, error) {
	var t model.Topic
	err := r.pool.QueryRow(ctx,
		`SELECT slug, description FROM topics WHERE slug = $1`, slug,
	).Scan(&t.Slug, &t.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFound("Topic", slug)
		}
		return nil, fmt.Errorf("postgres: getting topic %s: %w", slug, err)
	}
	return &t, nil
}
