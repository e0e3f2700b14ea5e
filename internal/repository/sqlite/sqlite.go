// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// SQLite is embedded: the whole database is one file (or ":memory:" in tests),
// so the service runs with no database server to install. modernc.org/sqlite
// is a pure Go translation of SQLite, so no C compiler is needed.
//
// The pattern is always:
//  1. sql.Open(driverName, dataSourceName) → creates a pool
//  2. db.QueryContext / db.ExecContext     → runs queries
//  3. rows.Scan(&field1, &field2)          → reads results into Go variables
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/repository"
	"github.com/sakif/nc-news/internal/seed"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and hands out one repository per resource.
type DB struct {
	conn *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx, so the same scan helpers
// serve plain reads and the read-back half of an update transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New opens the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/ncnews.db"  → file-based database (persistent)
//   - ":memory:"        → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection: every ":memory:" connection is a separate database, and
	// SQLite serializes writers anyway.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// dsn asks the driver to write time.Time values in SQLite's own format so
// created_at sorts lexically and reads back as time.Time.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_time_format=sqlite"
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Articles() repository.ArticleRepository { return &ArticleDB{db: db} }
func (db *DB) Comments() repository.CommentRepository { return &CommentDB{db: db} }
func (db *DB) Topics() repository.TopicRepository     { return &TopicDB{db: db} }
func (db *DB) Users() repository.UserRepository       { return &UserDB{db: db} }

// migrate creates the schema. CREATE ... IF NOT EXISTS keeps it idempotent.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS topics (
			slug        TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS users (
			username   TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("creating topics/users tables: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			article_id INTEGER PRIMARY KEY,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			votes      INTEGER NOT NULL DEFAULT 0,
			topic      TEXT NOT NULL REFERENCES topics(slug),
			author     TEXT NOT NULL REFERENCES users(username),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author);
		CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);
	`)
	if err != nil {
		return fmt.Errorf("creating articles table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			comment_id INTEGER PRIMARY KEY,
			author     TEXT NOT NULL REFERENCES users(username),
			article_id INTEGER NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
			votes      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			body       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	return nil
}

// Seed deletes every row and loads data in one transaction.
func (db *DB) Seed(ctx context.Context, data seed.Data) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning seed: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"comments", "articles", "users", "topics"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: clearing %s: %w", table, err)
		}
	}

	for _, t := range data.Topics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO topics (slug, description) VALUES (?, ?)`,
			t.Slug, t.Description,
		); err != nil {
			return fmt.Errorf("sqlite: seeding topic %s: %w", t.Slug, err)
		}
	}

	for _, u := range data.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)`,
			u.Username, u.Name, u.AvatarURL,
		); err != nil {
			return fmt.Errorf("sqlite: seeding user %s: %w", u.Username, err)
		}
	}

	for _, a := range data.Articles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO articles (article_id, title, body, votes, topic, author, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ArticleID, a.Title, a.Body, a.Votes, a.Topic, a.Author, a.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("sqlite: seeding article %d: %w", a.ArticleID, err)
		}
	}

	for _, c := range data.Comments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments (comment_id, author, article_id, votes, created_at, body)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.CommentID, c.Author, c.ArticleID, c.Votes, c.CreatedAt.UTC(), c.Body,
		); err != nil {
			return fmt.Errorf("sqlite: seeding comment %d: %w", c.CommentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing seed: %w", err)
	}
	return nil
}

// addVotes adds delta to the votes of one row of table inside q. It reports
// false when no row has that id. A sum outside int64 is rejected before the
// write: SQLite would silently store it as REAL.
func addVotes(ctx context.Context, q querier, table, idColumn string, id int64, delta int) (bool, error) {
	var votes int64
	err := q.QueryRowContext(ctx,
		`SELECT votes FROM `+table+` WHERE `+idColumn+` = ?`, id,
	).Scan(&votes)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: reading votes on %s %d: %w", table, id, err)
	}

	d := int64(delta)
	if (d > 0 && votes > math.MaxInt64-d) || (d < 0 && votes < math.MinInt64-d) {
		return true, apperror.InvalidType("inc_votes")
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE `+table+` SET votes = votes + ? WHERE `+idColumn+` = ?`, delta, id,
	); err != nil {
		return true, fmt.Errorf("sqlite: updating votes on %s %d: %w", table, id, err)
	}
	return true, nil
}
