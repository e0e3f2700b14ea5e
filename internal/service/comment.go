package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// Comment listing defaults and the message for a rejected sort.
const (
	DefaultCommentSort  = "created_at"
	DefaultCommentOrder = OrderDesc

	MsgBadCommentSort = "We cannot sort the comments in the way you have requested. Please try again"
)

// CommentSortColumns lists every accepted sort_by value for comments.
var CommentSortColumns = []string{"comment_id", "votes", "created_at", "author", "body"}

// CommentService implements the comment rules: listing per article,
// posting, voting and deletion.
type CommentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService. Articles and users are
// looked up to tell a missing parent apart from a bad request.
func NewCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		articles: articles,
		users:    users,
		logger:   logger,
	}
}

// ListByArticle returns every comment on an article. An article with no
// comments yields an empty slice; an unknown article is ErrNotFound.
// Empty sortBy/order fall back to created_at desc.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64, sortBy, order string) ([]model.Comment, error) {
	if sortBy == "" {
		sortBy = DefaultCommentSort
	}
	if order == "" {
		order = DefaultCommentOrder
	}
	if !slices.Contains(CommentSortColumns, sortBy) || !validOrder(order) {
		return nil, apperror.ValidationFailed("sort_by", MsgBadCommentSort)
	}

	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		logFailure(s.logger, "failed to get article", err, slog.Int64("article_id", articleID))
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, repository.CommentQuery{
		ArticleID: articleID,
		SortBy:    sortBy,
		Order:     order,
	})
	if err != nil {
		logFailure(s.logger, "failed to list comments", err, slog.Int64("article_id", articleID))
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Create posts a comment on an article as an existing user.
//
// Checks, in order: required fields (400), article exists (404), user
// exists (400, since the user is a field of the request body rather than
// the addressed resource).
func (s *CommentService) Create(ctx context.Context, articleID int64, username, body string) (*model.Comment, error) {
	username = strings.TrimSpace(username)
	if strings.TrimSpace(body) == "" {
		return nil, apperror.ValidationFailed("body", "Comment body is required")
	}
	if username == "" {
		return nil, apperror.ValidationFailed("created_by", "Comment author (created_by) is required")
	}

	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		logFailure(s.logger, "failed to get article", err, slog.Int64("article_id", articleID))
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		var appErr *apperror.AppError
		if errors.Is(err, apperror.ErrNotFound) && errors.As(err, &appErr) {
			return nil, apperror.ValidationFailed("created_by", appErr.Message)
		}
		logFailure(s.logger, "failed to look up comment author", err, slog.String("username", username))
		return nil, fmt.Errorf("looking up user %s: %w", username, err)
	}

	comment := &model.Comment{
		ArticleID: articleID,
		Author:    username,
		Body:      body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		logFailure(s.logger, "failed to create comment", err, slog.Int64("article_id", articleID))
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.Int64("comment_id", comment.CommentID),
		slog.Int64("article_id", articleID),
		slog.String("author", username),
	)
	return comment, nil
}

func (s *CommentService) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	comment, err := s.comments.IncrementVotes(ctx, id, delta)
	if err != nil {
		logFailure(s.logger, "failed to update comment votes", err, slog.Int64("comment_id", id))
		return nil, fmt.Errorf("updating votes on comment %d: %w", id, err)
	}

	s.logger.Info("comment votes updated",
		slog.Int64("comment_id", id),
		slog.Int("inc_votes", delta),
		slog.Int("votes", comment.Votes),
	)
	return comment, nil
}

// Delete removes a comment. Deleting it again reports ErrNotFound.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		logFailure(s.logger, "failed to delete comment", err, slog.Int64("comment_id", id))
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}
	s.logger.Info("comment deleted", slog.Int64("comment_id", id))
	return nil
}
