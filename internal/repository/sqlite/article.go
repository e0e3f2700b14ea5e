package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.ArticleRepository = (*ArticleDB)(nil)

// ArticleDB is the article repository. It shares the parent DB's pool.
type ArticleDB struct {
	db *DB
}

// articleSelect aggregates comment_count from live comment rows. Callers
// append WHERE, then GROUP BY a.article_id.
const articleSelect = `
	SELECT a.article_id, a.title, a.body, a.topic, a.author, a.created_at, a.votes,
	       COUNT(c.comment_id) AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id`

// scanner is the common subset of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner, a *model.Article) error {
	return s.Scan(
		&a.ArticleID, &a.Title, &a.Body, &a.Topic, &a.Author,
		&a.CreatedAt, &a.Votes, &a.CommentCount,
	)
}

// articleFilter builds the WHERE clause for the optional author/topic filters.
func articleFilter(q repository.ArticleQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Author != "" {
		conds = append(conds, "a.author = ?")
		args = append(args, q.Author)
	}
	if q.Topic != "" {
		conds = append(conds, "a.topic = ?")
		args = append(args, q.Topic)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of articles plus the number of articles that match
// the filters.
func (r *ArticleDB) List(ctx context.Context, q repository.ArticleQuery) ([]model.Article, int, error) {
	orderBy, err := repository.ArticleOrderBy(q.SortBy, q.Order)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	where, args := articleFilter(q)

	var total int
	if err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles a`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting filtered articles: %w", err)
	}

	query := articleSelect + where +
		` GROUP BY a.article_id ORDER BY ` + orderBy + ` LIMIT ? OFFSET ?`
	rows, err := r.db.conn.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		var a model.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning article row: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: iterating articles: %w", err)
	}

	return articles, total, nil
}

// Count returns the number of articles, ignoring filters.
func (r *ArticleDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting articles: %w", err)
	}
	return n, nil
}

// GetByID returns the aggregated article row.
func (r *ArticleDB) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	return getArticle(ctx, r.db.conn, id)
}

func getArticle(ctx context.Context, q querier, id int64) (*model.Article, error) {
	var a model.Article
	err := scanArticle(q.QueryRowContext(ctx,
		articleSelect+` WHERE a.article_id = ? GROUP BY a.article_id`, id,
	), &a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundByID("Article", id)
		}
		return nil, fmt.Errorf("sqlite: getting article %d: %w", id, err)
	}
	return &a, nil
}

// IncrementVotes adds delta to the article's votes and reads the row back
// inside the same transaction, so the caller never sees another request's
// increment interleaved between the write and the read.
func (r *ArticleDB) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning vote update: %w", err)
	}
	defer tx.Rollback()

	ok, err := addVotes(ctx, tx, "articles", "article_id", id, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFoundByID("Article", id)
	}

	article, err := getArticle(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing vote update: %w", err)
	}
	return article, nil
}
