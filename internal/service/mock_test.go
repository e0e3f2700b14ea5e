package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// In-memory stand-ins for the repository interfaces. They filter and page
// but do not sort; ordering is covered by the store tests. Setting err
// makes every method fail with it, simulating a database outage.

var errDatabaseDown = errors.New("database is down")

type mockArticleRepo struct {
	articles  []model.Article
	err       error
	lastQuery repository.ArticleQuery
}

func (m *mockArticleRepo) List(_ context.Context, q repository.ArticleQuery) ([]model.Article, int, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, 0, m.err
	}
	var matched []model.Article
	for _, a := range m.articles {
		if q.Author != "" && a.Author != q.Author {
			continue
		}
		if q.Topic != "" && a.Topic != q.Topic {
			continue
		}
		matched = append(matched, a)
	}
	total := len(matched)
	if q.Offset >= len(matched) {
		return []model.Article{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func (m *mockArticleRepo) Count(context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.articles), nil
}

func (m *mockArticleRepo) GetByID(_ context.Context, id int64) (*model.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.articles {
		if a.ArticleID == id {
			result := a
			return &result, nil
		}
	}
	return nil, apperror.NotFoundByID("Article", id)
}

func (m *mockArticleRepo) IncrementVotes(_ context.Context, id int64, delta int) (*model.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.articles {
		if m.articles[i].ArticleID == id {
			m.articles[i].Votes += delta
			result := m.articles[i]
			return &result, nil
		}
	}
	return nil, apperror.NotFoundByID("Article", id)
}

type mockCommentRepo struct {
	comments  []model.Comment
	nextID    int64
	err       error
	lastQuery repository.CommentQuery
}

func (m *mockCommentRepo) ListByArticle(_ context.Context, q repository.CommentQuery) ([]model.Comment, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Comment{}
	for _, c := range m.comments {
		if c.ArticleID == q.ArticleID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCommentRepo) Create(_ context.Context, c *model.Comment) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	c.CommentID = m.nextID
	c.Votes = 0
	m.comments = append(m.comments, *c)
	return nil
}

func (m *mockCommentRepo) IncrementVotes(_ context.Context, id int64, delta int) (*model.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.comments {
		if m.comments[i].CommentID == id {
			m.comments[i].Votes += delta
			result := m.comments[i]
			return &result, nil
		}
	}
	return nil, apperror.NotFoundByID("Comment", id)
}

func (m *mockCommentRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.comments {
		if m.comments[i].CommentID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundByID("Comment", id)
}

type mockTopicRepo struct {
	topics []model.Topic
	err    error
}

func (m *mockTopicRepo) List(context.Context) ([]model.Topic, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.topics, nil
}

func (m *mockTopicRepo) GetBySlug(_ context.Context, slug string) (*model.Topic, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.topics {
		if t.Slug == slug {
			result := t
			return &result, nil
		}
	}
	return nil, apperror.NotFound("Topic", slug)
}

type mockUserRepo struct {
	users []model.User
	err   error
}

func (m *mockUserRepo) List(context.Context) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			result := u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("User", username)
}

// =========================================================================
// TEST HELPERS
// =========================================================================

type mocks struct {
	articles *mockArticleRepo
	comments *mockCommentRepo
	topics   *mockTopicRepo
	users    *mockUserRepo
}

// newMocks returns repositories holding a small dataset: three articles by
// two authors across two topics, a third topic ("paper") and a user
// ("lurker") with no articles, and two comments on article 1.
func newMocks() *mocks {
	return &mocks{
		articles: &mockArticleRepo{articles: []model.Article{
			{ArticleID: 1, Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge", Votes: 100, CommentCount: 2},
			{ArticleID: 2, Title: "Sony Vaio; or, The Laptop", Topic: "mitch", Author: "icellusedkars"},
			{ArticleID: 3, Title: "UNCOVERED: catspiracy", Topic: "cats", Author: "rogersop"},
		}},
		comments: &mockCommentRepo{
			nextID: 2,
			comments: []model.Comment{
				{CommentID: 1, ArticleID: 1, Author: "butter_bridge", Body: "Oh, I've got compassion running out of my nose, pal!", Votes: 16},
				{CommentID: 2, ArticleID: 1, Author: "icellusedkars", Body: "The beautiful thing about treasure is that it exists.", Votes: 14},
			},
		},
		topics: &mockTopicRepo{topics: []model.Topic{
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "paper", Description: "what books are made of"},
		}},
		users: &mockUserRepo{users: []model.User{
			{Username: "butter_bridge", Name: "jonny"},
			{Username: "icellusedkars", Name: "sam"},
			{Username: "lurker", Name: "do_nothing"},
			{Username: "rogersop", Name: "paul"},
		}},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newArticleService(t *testing.T) (*ArticleService, *mocks) {
	t.Helper()
	m := newMocks()
	return NewArticleService(m.articles, m.users, m.topics, testLogger()), m
}

func newCommentService(t *testing.T) (*CommentService, *mocks) {
	t.Helper()
	m := newMocks()
	return NewCommentService(m.comments, m.articles, m.users, testLogger()), m
}

// appMessage returns the client-facing message carried by err, the text
// the handler puts in {"msg": ...}.
func appMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
