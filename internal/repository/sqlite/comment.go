package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.CommentRepository = (*CommentDB)(nil)

// CommentDB is the comment repository.
type CommentDB struct {
	db *DB
}

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

func scanComment(s scanner, c *model.Comment) error {
	return s.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt)
}

// ListByArticle returns every comment on one article. It does not check that
// the article exists; the service does that first.
func (r *CommentDB) ListByArticle(ctx context.Context, q repository.CommentQuery) ([]model.Comment, error) {
	orderBy, err := repository.CommentOrderBy(q.SortBy, q.Order)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments: %w", err)
	}

	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE article_id = ? ORDER BY `+orderBy,
		q.ArticleID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for article %d: %w", q.ArticleID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

// Create inserts a comment with zero votes. On success the caller's struct
// carries the generated comment_id and created_at.
func (r *CommentDB) Create(ctx context.Context, comment *model.Comment) error {
	comment.Votes = 0
	comment.CreatedAt = time.Now().UTC()

	result, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO comments (author, article_id, votes, created_at, body)
		 VALUES (?, ?, ?, ?, ?)`,
		comment.Author,
		comment.ArticleID,
		comment.Votes,
		comment.CreatedAt,
		comment.Body,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment on article %d: %w", comment.ArticleID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading comment id: %w", err)
	}
	comment.CommentID = id

	return nil
}

func getComment(ctx context.Context, q querier, id int64) (*model.Comment, error) {
	var c model.Comment
	err := scanComment(q.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE comment_id = ?`, id,
	), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundByID("Comment", id)
		}
		return nil, fmt.Errorf("sqlite: getting comment %d: %w", id, err)
	}
	return &c, nil
}

// IncrementVotes adds delta to the comment's votes and returns the updated row.
func (r *CommentDB) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning vote update: %w", err)
	}
	defer tx.Rollback()

	ok, err := addVotes(ctx, tx, "comments", "comment_id", id, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFoundByID("Comment", id)
	}

	comment, err := getComment(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing vote update: %w", err)
	}
	return comment, nil
}

// Delete removes a comment by id. Zero rows affected means the comment
// does not exist.
func (r *CommentDB) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE comment_id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFoundByID("Comment", id)
	}

	return nil
}
