// Package postgres implements the repository interfaces on PostgreSQL through
// a pgx connection pool.
//
// The queries mirror the sqlite package; the differences are $n placeholders,
// single-statement vote updates (UPDATE ... RETURNING inside a CTE) and the
// translation of SQLSTATE codes into apperror kinds.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/repository"
	"github.com/sakif/nc-news/internal/seed"
)

var _ repository.Store = (*DB)(nil)

// SQLSTATE codes the API reports as client errors.
const (
	codeNumericValueOutOfRange    = "22003"
	codeInvalidTextRepresentation = "22P02"
	codeForeignKeyViolation       = "23503"
	codeUniqueViolation           = "23505"
)

// DB wraps a pgxpool.Pool and hands out one repository per resource.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL, verifies the connection and runs migrations.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	return db, nil
}

// Close releases every pooled connection.
func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

func (db *DB) Articles() repository.ArticleRepository { return &ArticleDB{pool: db.pool} }
func (db *DB) Comments() repository.CommentRepository { return &CommentDB{pool: db.pool} }
func (db *DB) Topics() repository.TopicRepository     { return &TopicDB{pool: db.pool} }
func (db *DB) Users() repository.UserRepository       { return &UserDB{pool: db.pool} }

const schema = `
CREATE TABLE IF NOT EXISTS topics (
	slug        VARCHAR PRIMARY KEY,
	description VARCHAR NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS users (
	username   VARCHAR PRIMARY KEY,
	name       VARCHAR NOT NULL,
	avatar_url VARCHAR NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS articles (
	article_id BIGSERIAL PRIMARY KEY,
	title      VARCHAR NOT NULL,
	body       TEXT NOT NULL,
	votes      BIGINT NOT NULL DEFAULT 0,
	topic      VARCHAR NOT NULL REFERENCES topics(slug),
	author     VARCHAR NOT NULL REFERENCES users(username),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author);
CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);

CREATE TABLE IF NOT EXISTS comments (
	comment_id BIGSERIAL PRIMARY KEY,
	author     VARCHAR NOT NULL REFERENCES users(username),
	article_id BIGINT NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
	votes      BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	body       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id);
`

// migrate runs the schema. Exec without arguments goes over the simple
// protocol, which accepts several statements at once.
func (db *DB) migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Seed truncates every table and loads data in one transaction, then moves
// the id sequences past the explicit ids so new rows do not collide.
func (db *DB) Seed(ctx context.Context, data seed.Data) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: beginning seed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`,
	); err != nil {
		return fmt.Errorf("postgres: truncating tables: %w", err)
	}

	batch := &pgx.Batch{}
	for _, t := range data.Topics {
		batch.Queue(`INSERT INTO topics (slug, description) VALUES ($1, $2)`, t.Slug, t.Description)
	}
	for _, u := range data.Users {
		batch.Queue(`INSERT INTO users (username, name, avatar_url) VALUES ($1, $2, $3)`,
			u.Username, u.Name, u.AvatarURL)
	}
	for _, a := range data.Articles {
		batch.Queue(`INSERT INTO articles (article_id, title, body, votes, topic, author, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ArticleID, a.Title, a.Body, a.Votes, a.Topic, a.Author, a.CreatedAt)
	}
	for _, c := range data.Comments {
		batch.Queue(`INSERT INTO comments (comment_id, author, article_id, votes, created_at, body)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.CommentID, c.Author, c.ArticleID, c.Votes, c.CreatedAt, c.Body)
	}
	batch.Queue(`SELECT setval(pg_get_serial_sequence('articles', 'article_id'),
		COALESCE(MAX(article_id), 0) + 1, false) FROM articles`)
	batch.Queue(`SELECT setval(pg_get_serial_sequence('comments', 'comment_id'),
		COALESCE(MAX(comment_id), 0) + 1, false) FROM comments`)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: seeding rows: %w", mapError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: committing seed: %w", err)
	}
	return nil
}

// mapError converts driver errors the client caused into apperror kinds.
// Anything else is returned unchanged and ends up as a 500.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeInvalidTextRepresentation:
		return apperror.InvalidType(pgErr.ColumnName)
	case codeNumericValueOutOfRange:
		return apperror.InvalidType("inc_votes")
	case codeForeignKeyViolation:
		return apperror.ValidationFailed(pgErr.ColumnName, pgErr.Detail)
	case codeUniqueViolation:
		return apperror.Conflict(pgErr.TableName, pgErr.Detail)
	}
	return err
}

// isNoRows reports whether a QueryRow scan found nothing.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
