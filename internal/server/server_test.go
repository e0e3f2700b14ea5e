package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/nc-news/internal/config"
	"github.com/sakif/nc-news/internal/model"
	sqliteRepo "github.com/sakif/nc-news/internal/repository/sqlite"
	"github.com/sakif/nc-news/internal/seed"
	"github.com/sakif/nc-news/internal/server"
)

// newTestServer serves the full router over a freshly seeded in-memory
// SQLite database.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(context.Background(), seed.Default()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return server.NewWithStore(config.Config{Addr: ":0"}, store, logger).Handler()
}

// do sends one request and decodes a JSON response body into out (if non-nil).
func do(t *testing.T, h http.Handler, method, target, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out), "body: %s", rr.Body.String())
	}
	return rr
}

type msgBody struct {
	Msg string `json:"msg"`
}

type articlesBody struct {
	Articles   []model.Article `json:"articles"`
	TotalCount int             `json:"total_count"`
}

func ids(articles []model.Article) []int64 {
	out := make([]int64, len(articles))
	for i, a := range articles {
		out[i] = a.ArticleID
	}
	return out
}

// =========================================================================
// ROUTING
// =========================================================================

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t)

	var body msgBody
	rr := do(t, h, http.MethodGet, "/api/not-a-route", "", &body)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Route not found", body.Msg)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t)

	var body msgBody
	rr := do(t, h, http.MethodDelete, "/api/topics", "", &body)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "Method not allowed", body.Msg)
}

func TestAPIIndex(t *testing.T) {
	h := newTestServer(t)

	var body struct {
		Endpoints map[string]struct {
			Description string `json:"description"`
		} `json:"endpoints"`
	}
	rr := do(t, h, http.MethodGet, "/api", "", &body)
	require.Equal(t, http.StatusOK, rr.Code)

	for _, key := range []string{
		"GET /api",
		"GET /api/articles",
		"PATCH /api/articles/{article_id}",
		"POST /api/articles/{article_id}/comments",
		"DELETE /api/comments/{comment_id}",
		"GET /api/users/{username}",
	} {
		ep, ok := body.Endpoints[key]
		if assert.True(t, ok, "index should list %s", key) {
			assert.NotEmpty(t, ep.Description, key)
		}
	}
	assert.Len(t, body.Endpoints, 12)
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/topics", "", nil)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

// =========================================================================
// TOPICS / USERS
// =========================================================================

func TestTopics(t *testing.T) {
	h := newTestServer(t)

	var list struct {
		Topics []model.Topic `json:"topics"`
	}
	rr := do(t, h, http.MethodGet, "/api/topics", "", &list)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, list.Topics, 3)

	var one struct {
		Topic model.Topic `json:"topic"`
	}
	rr = do(t, h, http.MethodGet, "/api/topics/cats", "", &one)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "cats", one.Topic.Slug)

	var missing msgBody
	rr = do(t, h, http.MethodGet, "/api/topics/dogs", "", &missing)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Topic 'dogs' does not exist!", missing.Msg)
}

func TestUsers(t *testing.T) {
	h := newTestServer(t)

	var list struct {
		Users []model.User `json:"users"`
	}
	rr := do(t, h, http.MethodGet, "/api/users", "", &list)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, list.Users, 4)

	var raw map[string]map[string]any
	rr = do(t, h, http.MethodGet, "/api/users/lurker", "", &raw)
	assert.Equal(t, http.StatusOK, rr.Code)
	keys := make([]string, 0, len(raw["user"]))
	for k := range raw["user"] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"avatar_url", "name", "username"}, keys)

	var missing msgBody
	rr = do(t, h, http.MethodGet, "/api/users/kennyomega", "", &missing)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User 'kennyomega' does not exist!", missing.Msg)
}

// =========================================================================
// ARTICLES
// =========================================================================

func TestListArticles_Defaults(t *testing.T) {
	h := newTestServer(t)

	var body articlesBody
	rr := do(t, h, http.MethodGet, "/api/articles", "", &body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 12, body.TotalCount)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(body.Articles))
	assert.Equal(t, 13, body.Articles[0].CommentCount)
}

func TestListArticles_Pages(t *testing.T) {
	h := newTestServer(t)

	var page2 articlesBody
	rr := do(t, h, http.MethodGet, "/api/articles?p=2", "", &page2)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int64{11, 12}, ids(page2.Articles))

	var viaPage articlesBody
	do(t, h, http.MethodGet, "/api/articles?page=2", "", &viaPage)
	assert.Equal(t, ids(page2.Articles), ids(viaPage.Articles))

	var end msgBody
	rr = do(t, h, http.MethodGet, "/api/articles?p=3", "", &end)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "You've reached the end of the articles!", end.Msg)
}

func TestListArticles_SortAndFilter(t *testing.T) {
	h := newTestServer(t)

	var byID articlesBody
	do(t, h, http.MethodGet, "/api/articles?sort_by=article_id&order=asc&limit=3", "", &byID)
	assert.Equal(t, []int64{1, 2, 3}, ids(byID.Articles))

	var byAuthor articlesBody
	rr := do(t, h, http.MethodGet, "/api/articles?author=butter_bridge", "", &byAuthor)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, byAuthor.TotalCount)
	for _, a := range byAuthor.Articles {
		assert.Equal(t, "butter_bridge", a.Author)
	}

	var both articlesBody
	do(t, h, http.MethodGet, "/api/articles?author=rogersop&topic=cats", "", &both)
	assert.Equal(t, []int64{5}, ids(both.Articles))
	assert.Equal(t, 1, both.TotalCount)
}

func TestListArticles_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		msg    string
	}{
		{"negative limit", "?limit=-1", 400, "We cannot show you a negative number of articles"},
		{"zero page", "?p=0", 400, "We cannot show you a negative number of articles"},
		{"text limit", "?limit=ten", 400, "We cannot show you a negative number of articles"},
		{"bad sort", "?sort_by=lemons", 400, "We cannot sort the articles in the way you have requested. Please try again"},
		{"bad order", "?order=up", 400, "We cannot sort the articles in the way you have requested. Please try again"},
		{"upper case sort", "?sort_by=TITLE&order=ASC", 400, "We cannot sort the articles in the way you have requested. Please try again"},
		{"upper case order", "?order=DESC", 400, "We cannot sort the articles in the way you have requested. Please try again"},
		{"offset overflows", "?limit=4611686018427387904&p=3", 400, "We cannot show you a negative number of articles"},
		{"unknown author", "?author=kennyomega", 404, "The author you have requested does not exist"},
		{"unknown topic", "?topic=dogs", 404, "This category does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t)

			var body msgBody
			rr := do(t, h, http.MethodGet, "/api/articles"+tt.query, "", &body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.msg, body.Msg)
		})
	}
}

func TestListArticles_HugeLimit(t *testing.T) {
	h := newTestServer(t)

	for _, limit := range []string{"1000000000", "10000000000000"} {
		var body articlesBody
		rr := do(t, h, http.MethodGet, "/api/articles?limit="+limit, "", &body)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Len(t, body.Articles, 12, limit)
		assert.Equal(t, 12, body.TotalCount, limit)
	}
}

func TestListArticles_FilteredPagePastItsEnd(t *testing.T) {
	h := newTestServer(t)

	var first articlesBody
	rr := do(t, h, http.MethodGet, "/api/articles?author=butter_bridge&limit=2&p=1", "", &first)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, first.Articles, 2)
	assert.Equal(t, 3, first.TotalCount)

	var past articlesBody
	rr = do(t, h, http.MethodGet, "/api/articles?author=butter_bridge&limit=2&p=3", "", &past)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, past.Articles)
	assert.Empty(t, past.Articles)
	assert.Equal(t, first.TotalCount, past.TotalCount)
}

func TestListArticles_KnownButEmpty(t *testing.T) {
	h := newTestServer(t)

	for _, query := range []string{"?author=lurker", "?topic=paper"} {
		var body articlesBody
		rr := do(t, h, http.MethodGet, "/api/articles"+query, "", &body)
		assert.Equal(t, http.StatusOK, rr.Code, query)
		assert.NotNil(t, body.Articles, query)
		assert.Empty(t, body.Articles, query)
		assert.Equal(t, 0, body.TotalCount, query)
	}
}

func TestGetArticle(t *testing.T) {
	h := newTestServer(t)

	var body struct {
		Article model.Article `json:"article"`
	}
	rr := do(t, h, http.MethodGet, "/api/articles/1", "", &body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Living in the shadow of a great man", body.Article.Title)
	assert.Equal(t, 13, body.Article.CommentCount)

	var missing msgBody
	rr = do(t, h, http.MethodGet, "/api/articles/29", "", &missing)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Article with ID '29' does not exist!", missing.Msg)

	var beyondInt32 msgBody
	rr = do(t, h, http.MethodGet, "/api/articles/3000000000", "", &beyondInt32)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Article with ID '3000000000' does not exist!", beyondInt32.Msg)

	var invalid msgBody
	rr = do(t, h, http.MethodGet, "/api/articles/dog", "", &invalid)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid input type - Text", invalid.Msg)
}

func TestPatchArticleVotes(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		votes  int
		msg    string
	}{
		{name: "increment", target: "/api/articles/1", body: `{"inc_votes": 1}`, status: 200, votes: 101},
		{name: "decrement below zero", target: "/api/articles/2", body: `{"inc_votes": -5}`, status: 200, votes: -5},
		{name: "missing inc_votes", target: "/api/articles/1", body: `{}`, status: 200, votes: 100},
		{name: "no body", target: "/api/articles/1", body: "", status: 200, votes: 100},
		{name: "text inc_votes", target: "/api/articles/1", body: `{"inc_votes": "cat"}`, status: 400, msg: "Invalid input type - Text"},
		{name: "text id", target: "/api/articles/cat", body: `{"inc_votes": 1}`, status: 400, msg: "Invalid input type - Text"},
		{name: "unknown id", target: "/api/articles/20", body: `{"inc_votes": 1}`, status: 404, msg: "Article with ID '20' does not exist!"},
		{name: "votes overflow", target: "/api/articles/1", body: `{"inc_votes": 9223372036854775807}`, status: 400, msg: "Invalid input type - Text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t)

			var body struct {
				Article model.Article `json:"article"`
				Msg     string        `json:"msg"`
			}
			rr := do(t, h, http.MethodPatch, tt.target, tt.body, &body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body.Msg)
				return
			}
			assert.Equal(t, tt.votes, body.Article.Votes)
		})
	}
}

// =========================================================================
// COMMENTS
// =========================================================================

type commentsBody struct {
	Comments []model.Comment `json:"comments"`
}

func TestListComments(t *testing.T) {
	h := newTestServer(t)

	var body commentsBody
	rr := do(t, h, http.MethodGet, "/api/articles/1/comments", "", &body)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, body.Comments, 13)
	assert.Equal(t, int64(2), body.Comments[0].CommentID, "newest first by default")

	var byVotes commentsBody
	do(t, h, http.MethodGet, "/api/articles/1/comments?sort_by=votes&order=asc", "", &byVotes)
	require.NotEmpty(t, byVotes.Comments)
	assert.Equal(t, -100, byVotes.Comments[0].Votes)

	var none commentsBody
	rr = do(t, h, http.MethodGet, "/api/articles/2/comments", "", &none)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, none.Comments)
	assert.Empty(t, none.Comments)

	var missing msgBody
	rr = do(t, h, http.MethodGet, "/api/articles/29/comments", "", &missing)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Article with ID '29' does not exist!", missing.Msg)

	var invalid msgBody
	rr = do(t, h, http.MethodGet, "/api/articles/dog/comments", "", &invalid)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid input type - Text", invalid.Msg)
}

func TestPostComment(t *testing.T) {
	h := newTestServer(t)

	var body struct {
		Comment model.Comment `json:"comment"`
	}
	rr := do(t, h, http.MethodPost, "/api/articles/2/comments",
		`{"created_by": "lurker", "body": "This is a comment"}`, &body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, int64(19), body.Comment.CommentID)
	assert.Equal(t, int64(2), body.Comment.ArticleID)
	assert.Equal(t, "lurker", body.Comment.Author)
	assert.Equal(t, "This is a comment", body.Comment.Body)
	assert.Equal(t, 0, body.Comment.Votes)
	assert.False(t, body.Comment.CreatedAt.IsZero())

	var list commentsBody
	do(t, h, http.MethodGet, "/api/articles/2/comments", "", &list)
	assert.Len(t, list.Comments, 1)
}

func TestPostComment_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		msg    string
	}{
		{name: "unknown user", target: "/api/articles/1/comments", body: `{"created_by": "kennyomega", "body": "hi"}`,
			status: 400, msg: "User 'kennyomega' does not exist!"},
		{name: "unknown article", target: "/api/articles/29/comments", body: `{"created_by": "lurker", "body": "hi"}`,
			status: 404, msg: "Article with ID '29' does not exist!"},
		{name: "text article id", target: "/api/articles/dog/comments", body: `{"created_by": "lurker", "body": "hi"}`,
			status: 400, msg: "Invalid input type - Text"},
		{name: "missing body", target: "/api/articles/1/comments", body: `{"created_by": "lurker"}`, status: 400},
		{name: "malformed json", target: "/api/articles/1/comments", body: `{"created_by":`, status: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t)

			var body msgBody
			rr := do(t, h, http.MethodPost, tt.target, tt.body, &body)
			assert.Equal(t, tt.status, rr.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body.Msg)
			} else {
				assert.NotEmpty(t, body.Msg)
			}
		})
	}
}

func TestPatchCommentVotes(t *testing.T) {
	h := newTestServer(t)

	var body struct {
		Comment model.Comment `json:"comment"`
	}
	rr := do(t, h, http.MethodPatch, "/api/comments/2", `{"inc_votes": -20}`, &body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, -6, body.Comment.Votes)

	var missing msgBody
	rr = do(t, h, http.MethodPatch, "/api/comments/78", `{"inc_votes": 1}`, &missing)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Comment with ID '78' does not exist!", missing.Msg)

	var invalid msgBody
	rr = do(t, h, http.MethodPatch, "/api/comments/2", `{"inc_votes": "lots"}`, &invalid)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid input type - Text", invalid.Msg)

	var underflow msgBody
	rr = do(t, h, http.MethodPatch, "/api/comments/2", `{"inc_votes": -9223372036854775808}`, &underflow)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid input type - Text", underflow.Msg)
}

func TestDeleteComment(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodDelete, "/api/comments/2", "", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	var list commentsBody
	do(t, h, http.MethodGet, "/api/articles/1/comments", "", &list)
	for _, c := range list.Comments {
		assert.NotEqual(t, int64(2), c.CommentID)
	}

	var again msgBody
	rr = do(t, h, http.MethodDelete, "/api/comments/2", "", &again)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Comment with ID '2' does not exist!", again.Msg)

	var invalid msgBody
	rr = do(t, h, http.MethodDelete, "/api/comments/commentstring", "", &invalid)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid input type - Text", invalid.Msg)
}

func TestOpenStore_SQLiteFile(t *testing.T) {
	cfg := config.Config{DBPath: t.TempDir() + "/nested/ncnews.db"}

	store, err := server.OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Articles().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
