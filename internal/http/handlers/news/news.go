// Package news реализует HTTP-обработчики ленты новостей.
package news

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foundation-backend/internal/http/response"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// Service агрегатор новостей.
type Service interface {
	Articles(ctx context.Context) ([]models.Article, error)
	Sources(ctx context.Context) []models.NewsSource
}

// ArticlesResponse тело GET /news.
type ArticlesResponse struct {
	Articles []models.Article `json:"articles"`
}

// SourcesResponse тело GET /news/sources.
type SourcesResponse struct {
	Sources []models.NewsSource `json:"sources"`
}

// Handler обработчики /news.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// Articles godoc
// @Summary Новости хип-хопа
// @Tags News
// @Produce json
// @Success 200 {object} ArticlesResponse
// @Router /api/news [get]
func (h *Handler) Articles(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", "handlers.news.Articles"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	articles, err := h.svc.Articles(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	render.JSON(w, r, ArticlesResponse{Articles: articles})
}

// Sources godoc
// @Summary Источники новостей
// @Tags News
// @Produce json
// @Success 200 {object} SourcesResponse
// @Router /api/news/sources [get]
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SourcesResponse{Sources: h.svc.Sources(r.Context())})
}
