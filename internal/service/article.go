package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// Listing defaults applied when a query parameter is absent.
const (
	DefaultArticleSort  = "created_at"
	DefaultArticleOrder = OrderDesc
	DefaultArticleLimit = 10
	DefaultArticlePage  = 1
)

// Messages the articles listing reports to clients.
const (
	MsgNegativeArticles = "We cannot show you a negative number of articles"
	MsgBadArticleSort   = "We cannot sort the articles in the way you have requested. Please try again"
	MsgEndOfArticles    = "You've reached the end of the articles!"
	MsgUnknownAuthor    = "The author you have requested does not exist"
	MsgUnknownTopic     = "This category does not exist"
)

// ArticleSortColumns lists every accepted sort_by value.
var ArticleSortColumns = []string{
	"title", "article_id", "author", "topic", "body", "created_at", "votes", "comment_count",
}

// ArticleListOptions is a listing request as the client sent it. Author and
// Topic are optional equality filters; empty means unfiltered.
type ArticleListOptions struct {
	SortBy string
	Order  string
	Author string
	Topic  string
	Limit  int
	Page   int
}

// DefaultArticleListOptions returns the options used for a bare
// GET /api/articles.
func DefaultArticleListOptions() ArticleListOptions {
	return ArticleListOptions{
		SortBy: DefaultArticleSort,
		Order:  DefaultArticleOrder,
		Limit:  DefaultArticleLimit,
		Page:   DefaultArticlePage,
	}
}

// ListOutcome classifies a listing result before it is turned into a
// response or an error.
type ListOutcome int

const (
	// OutcomePage is a normal result, possibly empty.
	OutcomePage ListOutcome = iota
	// OutcomeUnknownAuthor: nothing matched an author filter naming no user.
	OutcomeUnknownAuthor
	// OutcomeUnknownTopic: nothing matched a topic filter naming no topic.
	OutcomeUnknownTopic
	// OutcomeEmpty: nothing matched, but the filtered user or topic exists.
	OutcomeEmpty
)

func (o ListOutcome) String() string {
	switch o {
	case OutcomePage:
		return "page"
	case OutcomeUnknownAuthor:
		return "unknown_author"
	case OutcomeUnknownTopic:
		return "unknown_topic"
	case OutcomeEmpty:
		return "empty"
	}
	return fmt.Sprintf("ListOutcome(%d)", int(o))
}

// ArticleList is one page of articles and the number of articles matching
// the filters across all pages.
type ArticleList struct {
	Articles   []model.Article `json:"articles"`
	TotalCount int             `json:"total_count"`
	Outcome    ListOutcome     `json:"-"`
}

// ArticleService implements the article listing, lookup and voting rules.
type ArticleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	topics   repository.TopicRepository
	logger   *slog.Logger
}

// NewArticleService creates an ArticleService. The user and topic
// repositories are only consulted to explain an empty filtered listing.
func NewArticleService(
	articles repository.ArticleRepository,
	users repository.UserRepository,
	topics repository.TopicRepository,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		articles: articles,
		users:    users,
		topics:   topics,
		logger:   logger,
	}
}

// List validates opts, fetches one page and reconciles an empty page with
// the author/topic tables.
//
// The checks run in a fixed order: bounds (including a limit and page whose
// offset would overflow), then sort, then the page range against the
// unfiltered article count. An empty table never reports "end of the
// articles"; it lists nothing instead.
func (s *ArticleService) List(ctx context.Context, opts ArticleListOptions) (*ArticleList, error) {
	opts.Author = strings.TrimSpace(opts.Author)
	opts.Topic = strings.TrimSpace(opts.Topic)

	// === VALIDATION ===
	if opts.Limit < 1 {
		return nil, apperror.ValidationFailed("limit", MsgNegativeArticles)
	}
	if opts.Page < 1 {
		return nil, apperror.ValidationFailed("p", MsgNegativeArticles)
	}
	if opts.Page > 1 && opts.Limit > math.MaxInt/(opts.Page-1) {
		return nil, apperror.ValidationFailed("limit", MsgNegativeArticles)
	}
	if !slices.Contains(ArticleSortColumns, opts.SortBy) || !validOrder(opts.Order) {
		return nil, apperror.ValidationFailed("sort_by", MsgBadArticleSort)
	}

	offset := opts.Limit * (opts.Page - 1)

	total, err := s.articles.Count(ctx)
	if err != nil {
		logFailure(s.logger, "failed to count articles", err)
		return nil, fmt.Errorf("counting articles: %w", err)
	}
	if total > 0 && offset >= total {
		return nil, apperror.NotFoundMsg(MsgEndOfArticles)
	}

	// === QUERY ===
	articles, matched, err := s.articles.List(ctx, repository.ArticleQuery{
		SortBy: opts.SortBy,
		Order:  opts.Order,
		Author: opts.Author,
		Topic:  opts.Topic,
		Limit:  opts.Limit,
		Offset: offset,
	})
	if err != nil {
		logFailure(s.logger, "failed to list articles", err)
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	// === RECONCILIATION ===
	outcome, err := s.classify(ctx, opts, len(articles))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("articles listed",
		slog.String("outcome", outcome.String()),
		slog.Int("count", len(articles)),
		slog.Int("total_count", matched),
	)

	switch outcome {
	case OutcomeUnknownAuthor:
		return nil, apperror.NotFoundMsg(MsgUnknownAuthor)
	case OutcomeUnknownTopic:
		return nil, apperror.NotFoundMsg(MsgUnknownTopic)
	case OutcomeEmpty:
		return &ArticleList{Articles: []model.Article{}, TotalCount: matched, Outcome: outcome}, nil
	}
	if articles == nil {
		articles = []model.Article{}
	}
	return &ArticleList{Articles: articles, TotalCount: matched, Outcome: OutcomePage}, nil
}

// classify decides the outcome of a listing that returned n rows. Only an
// empty page with exactly one filter consults another table.
func (s *ArticleService) classify(ctx context.Context, opts ArticleListOptions, n int) (ListOutcome, error) {
	if n > 0 {
		return OutcomePage, nil
	}

	switch {
	case opts.Author != "" && opts.Topic == "":
		exists, err := found(s.users.GetByUsername(ctx, opts.Author))
		if err != nil {
			logFailure(s.logger, "failed to look up author", err, slog.String("author", opts.Author))
			return 0, fmt.Errorf("looking up author %s: %w", opts.Author, err)
		}
		if !exists {
			return OutcomeUnknownAuthor, nil
		}
		return OutcomeEmpty, nil

	case opts.Topic != "" && opts.Author == "":
		exists, err := found(s.topics.GetBySlug(ctx, opts.Topic))
		if err != nil {
			logFailure(s.logger, "failed to look up topic", err, slog.String("topic", opts.Topic))
			return 0, fmt.Errorf("looking up topic %s: %w", opts.Topic, err)
		}
		if !exists {
			return OutcomeUnknownTopic, nil
		}
		return OutcomeEmpty, nil

	case opts.Author != "" && opts.Topic != "":
		return OutcomeEmpty, nil
	}
	return OutcomePage, nil
}

// found turns a lookup result into an existence flag. ErrNotFound is the
// answer "no", not a failure.
func found[T any](_ *T, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperror.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// GetByID returns one article with its comment_count.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get article", err, slog.Int64("article_id", id))
		return nil, err
	}
	return article, nil
}

// IncrementVotes adds delta (which may be negative or zero) to an article's
// votes and returns the row as written.
func (s *ArticleService) IncrementVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	article, err := s.articles.IncrementVotes(ctx, id, delta)
	if err != nil {
		logFailure(s.logger, "failed to update article votes", err, slog.Int64("article_id", id))
		return nil, fmt.Errorf("updating votes on article %d: %w", id, err)
	}

	s.logger.Info("article votes updated",
		slog.Int64("article_id", id),
		slog.Int("inc_votes", delta),
		slog.Int("votes", article.Votes),
	)
	return article, nil
}
