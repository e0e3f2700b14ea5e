package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/service"
)

type TopicHandler struct {
	svc    *service.TopicService
	logger *slog.Logger
}

func NewTopicHandler(svc *service.TopicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{svc: svc, logger: logger}
}

// HTTP: GET /api/topics
func (h *TopicHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Topics []model.Topic `json:"topics"`
	}{topics})
}

// HTTP: GET /api/topics/{slug}
func (h *TopicHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	topic, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Topic *model.Topic `json:"topic"`
	}{topic})
}
