package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.TopicRepository = (*TopicDB)(nil)

// TopicDB is the topic repository.
type TopicDB struct {
	db *DB
}

// List returns every topic ordered by slug.
func (r *TopicDB) List(ctx context.Context) ([]model.Topic, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT slug, description FROM topics ORDER BY slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topics: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic row: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating topics: %w", err)
	}
	return topics, nil
}

// GetBySlug returns apperror.ErrNotFound if no topic has that slug.
func (r *TopicDB) GetBySlug(ctx context.Context, slug string) (*model.Topic, error) {
	var t model.Topic
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT slug, description FROM topics WHERE slug = ?`, slug,
	).Scan(&t.Slug, &t.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Topic", slug)
		}
		return nil, fmt.Errorf("sqlite: getting topic %s: %w", slug, err)
	}
	return &t, nil
}
