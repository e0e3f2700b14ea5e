package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.CommentRepository = (*CommentDB)(nil)

// CommentDB is the comment repository over the shared pgx pool.
type CommentDB struct {
	pool *pgxpool.Pool
}

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

func scanComment(row pgx.Row, c *model.Comment) error {
	return row.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt)
}

func (r *CommentDB) ListByArticle(ctx context.Context, q repository.CommentQuery) ([]model.Comment, error) {
	orderBy, err := repository.CommentOrderBy(q.SortBy, q.Order)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing comments: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE article_id = $1 ORDER BY `+orderBy,
		q.ArticleID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing comments for article %d: %w", q.ArticleID, mapError(err))
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("postgres: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating comments: %w", mapError(err))
	}
	return comments, nil
}

func (r *CommentDB) Create(ctx context.Context, comment *model.Comment) error {
	comment.Votes = 0
	comment.CreatedAt = time.Now().UTC()

	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments (author, article_id, votes, created_at, body)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING comment_id`,
		comment.Author, comment.ArticleID, comment.Votes, comment.CreatedAt, comment.Body,
	).Scan(&comment.CommentID)
	if err != nil {
		return fmt.Errorf("postgres: creating comment on article %d: %w", comment.ArticleID, mapError(err))
	}
	return nil
}

func (r *CommentDB) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	var c model.Comment
	err := scanComment(r.pool.QueryRow(ctx,
		`UPDATE comments SET votes = votes + $1 WHERE comment_id = $2
		 RETURNING `+commentColumns,
		delta, id,
	), &c)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.NotFoundByID("Comment", id)
		}
		return nil, fmt.Errorf("postgres: updating votes on comment %d: %w", id, mapError(err))
	}
	return &c, nil
}

// Delete removes one comment; no affected row means it does not exist.
func (r *CommentDB) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting comment %d: %w", id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFoundByID("Comment", id)
	}
	return nil
}
