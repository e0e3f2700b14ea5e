package repository

import (
	"context"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/seed"
)

// ArticleQuery is a fully validated article listing request. SortBy and
// Order have already been checked against the allow-lists by the service,
// so implementations may interpolate them into ORDER BY.
type ArticleQuery struct {
	SortBy string
	Order  string
	Author string // empty = no filter
	Topic  string // empty = no filter
	Limit  int
	Offset int
}

// CommentQuery is a validated comment listing request for one article.
type CommentQuery struct {
	ArticleID int64
	SortBy    string
	Order     string
}

type ArticleRepository interface {
	// List returns one page of articles matching the filters, each with its
	// comment_count, plus the number of articles matching the filters.
	List(ctx context.Context, q ArticleQuery) ([]model.Article, int, error)
	// Count returns the number of articles, ignoring any filter.
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	// IncrementVotes adds delta to votes and returns the updated row.
	IncrementVotes(ctx context.Context, id int64, delta int) (*model.Article, error)
}

type CommentRepository interface {
	ListByArticle(ctx context.Context, q CommentQuery) ([]model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	IncrementVotes(ctx context.Context, id int64, delta int) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type TopicRepository interface {
	List(ctx context.Context) ([]model.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*model.Topic, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// Store is one backing database exposing every resource. The sqlite and
// postgres packages both implement it.
type Store interface {
	Articles() ArticleRepository
	Comments() CommentRepository
	Topics() TopicRepository
	Users() UserRepository
	// Seed replaces every row with the given dataset.
	Seed(ctx context.Context, data seed.Data) error
	Close() error
}
