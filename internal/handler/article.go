package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/service"
)

// ArticleHandler serves /api/articles and /api/articles/{article_id}.
// Comments nested under an article belong to CommentHandler.
type ArticleHandler struct {
	svc    *service.ArticleService
	logger *slog.Logger
}

func NewArticleHandler(svc *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, logger: logger}
}

type articleResponse struct {
	Article *model.Article `json:"article"`
}

// HandleList returns one page of articles.
//
// HTTP: GET /api/articles?sort_by=&order=&author=&topic=&limit=&p=
//
//	{"articles": [...], "total_count": 12}
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	opts, err := articleListOptions(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	list, err := h.svc.List(r.Context(), opts)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

// articleListOptions reads the listing query string over the defaults. A
// parameter that is present but empty is passed through, so ?sort_by= is
// rejected like any other unknown column. The page is read from p, or from
// page when p is absent.
func articleListOptions(r *http.Request) (service.ArticleListOptions, error) {
	q := r.URL.Query()
	opts := service.DefaultArticleListOptions()

	if q.Has("sort_by") {
		opts.SortBy = q.Get("sort_by")
	}
	if q.Has("order") {
		opts.Order = q.Get("order")
	}
	opts.Author = q.Get("author")
	opts.Topic = q.Get("topic")

	if q.Has("limit") {
		n, err := strconv.Atoi(q.Get("limit"))
		if err != nil {
			return opts, apperror.ValidationFailed("limit", service.MsgNegativeArticles)
		}
		opts.Limit = n
	}

	pageKey := "p"
	if !q.Has(pageKey) {
		pageKey = "page"
	}
	if q.Has(pageKey) {
		n, err := strconv.Atoi(q.Get(pageKey))
		if err != nil {
			return opts, apperror.ValidationFailed(pageKey, service.MsgNegativeArticles)
		}
		opts.Page = n
	}

	return opts, nil
}

// HandleGetByID returns one article with its comment_count.
//
// HTTP: GET /api/articles/{article_id}
func (h *ArticleHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, articleResponse{Article: article})
}

// HandleUpdateVotes applies {"inc_votes": n} and returns the updated article.
//
// HTTP: PATCH /api/articles/{article_id}
func (h *ArticleHandler) HandleUpdateVotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	delta, err := decodeVotes(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.svc.IncrementVotes(r.Context(), id, delta)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, articleResponse{Article: article})
}
