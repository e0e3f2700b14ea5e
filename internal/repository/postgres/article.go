package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.ArticleRepository = (*ArticleDB)(nil)

// ArticleDB is the article repository over the shared pgx pool.
type ArticleDB struct {
	pool *pgxpool.Pool
}

const articleSelect = `
	SELECT a.article_id, a.title, a.body, a.topic, a.author, a.created_at, a.votes,
	       COUNT(c.comment_id) AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id`

func scanArticle(row pgx.Row, a *model.Article) error {
	return row.Scan(
		&a.ArticleID, &a.Title, &a.Body, &a.Topic, &a.Author,
		&a.CreatedAt, &a.Votes, &a.CommentCount,
	)
}

// articleFilter numbers placeholders from $1; List appends LIMIT/OFFSET after.
func articleFilter(q repository.ArticleQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Author != "" {
		args = append(args, q.Author)
		conds = append(conds, fmt.Sprintf("a.author = $%d", len(args)))
	}
	if q.Topic != "" {
		args = append(args, q.Topic)
		conds = append(conds, fmt.Sprintf("a.topic = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ArticleDB) List(ctx context.Context, q repository.ArticleQuery) ([]model.Article, int, error) {
	orderBy, err := repository.ArticleOrderBy(q.SortBy, q.Order)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: listing articles: %w", err)
	}
	where, args := articleFilter(q)

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM articles a`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: counting filtered articles: %w", mapError(err))
	}

	query := fmt.Sprintf("%s%s GROUP BY a.article_id ORDER BY %s LIMIT $%d OFFSET $%d",
		articleSelect, where, orderBy, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: listing articles: %w", mapError(err))
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		var a model.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("postgres: scanning article row: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: iterating articles: %w", mapError(err))
	}

	return articles, total, nil
}

// Count returns the number of articles, ignoring filters.
func (r *ArticleDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: counting articles: %w", err)
	}
	return n, nil
}

func (r *ArticleDB) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article
	err := scanArticle(r.pool.QueryRow(ctx,
		articleSelect+` WHERE a.article_id = $1 GROUP BY a.article_id`, id,
	), &a)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFoundByID("Article", id)
		}
		return nil, fmt.Errorf("postgres: getting article %d: %w", id, mapError(err))
	}
	return &a, nil
}

// IncrementVotes updates and reads back in one statement: the CTE's
// RETURNING row is the row this request wrote.
func (r *ArticleDB) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	var a model.Article
	err := scanArticle(r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE articles SET votes = votes + $1 WHERE article_id = $2
			RETURNING article_id, title, body, topic, author, created_at, votes
		)
		SELECT u.article_id, u.title, u.body, u.topic, u.author, u.created_at, u.votes,
		       (SELECT COUNT(*) FROM comments c WHERE c.article_id = u.article_id) AS comment_count
		FROM updated u`,
		delta, id,
	), &a)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFoundByID("Article", id)
		}
		return nil, fmt.Errorf("postgres: updating votes on article %d: %w", id, mapError(err))
	}
	return &a, nil
}
