package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/service"
)

type CommentHandler struct {
	svc    *service.CommentService
	logger *slog.Logger
}

func NewCommentHandler(svc *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, logger: logger}
}

type commentResponse struct {
	Comment *model.Comment `json:"comment"`
}

type commentListResponse struct {
	Comments []model.Comment `json:"comments"`
}

// createCommentRequest accepts the author as created_by, or username.
type createCommentRequest struct {
	Body      string `json:"body"`
	CreatedBy string `json:"created_by"`
	Username  string `json:"username"`
}

func (c createCommentRequest) author() string {
	if c.CreatedBy != "" {
		return c.CreatedBy
	}
	return c.Username
}

// HandleListByArticle returns every comment on one article.
//
// HTTP: GET /api/articles/{article_id}/comments?sort_by=&order=
func (h *CommentHandler) HandleListByArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	q := r.URL.Query()
	comments, err := h.svc.ListByArticle(r.Context(), articleID, q.Get("sort_by"), q.Get("order"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, commentListResponse{Comments: comments})
}

// HandleCreate posts a comment.
//
// HTTP: POST /api/articles/{article_id}/comments
// REQUEST BODY: {"created_by": "butter_bridge", "body": "..."}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "article_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req createCommentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, h.logger, apperror.ValidationFailed("body", "Request body must be a JSON object with body and created_by"))
		return
	}

	comment, err := h.svc.Create(r.Context(), articleID, req.author(), req.Body)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, commentResponse{Comment: comment})
}

// HandleUpdateVotes applies {"inc_votes": n} to a comment.
//
// HTTP: PATCH /api/comments/{comment_id}
func (h *CommentHandler) HandleUpdateVotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	delta, err := decodeVotes(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	comment, err := h.svc.IncrementVotes(r.Context(), id, delta)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, commentResponse{Comment: comment})
}

// HandleDelete removes a comment and answers 204 with no body.
//
// HTTP: DELETE /api/comments/{comment_id}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
