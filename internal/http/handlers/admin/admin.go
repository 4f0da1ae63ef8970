// Package admin реализует HTTP-обработчики панели администратора.
// Все маршруты монтируются за middlewarectx.RequireAdmin.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foundation-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foundation-backend/internal/http/request"
	"github.com/magabrotheeeer/foundation-backend/internal/http/response"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// Service операции администратора.
type Service interface {
	Stats(ctx context.Context) (*models.SiteStats, error)
	Users(ctx context.Context, page models.Page) ([]*models.User, error)
	ToggleAdmin(ctx context.Context, actor *models.User, id int64) (*models.User, error)
	SetActive(ctx context.Context, actor *models.User, id int64, isActive bool) (*models.User, error)
	PendingDonations(ctx context.Context, page models.Page) ([]*models.Donation, error)
}

// SetActiveRequest тело PATCH /admin/users/{id}/active.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Handler обработчики /admin.
type Handler struct {
	log      *slog.Logger
	svc      Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc, validate: request.NewValidator()}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Stats godoc
// @Summary Сводка по сайту
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SiteStats
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/admin/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Stats")

	st, err := h.svc.Stats(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	render.JSON(w, r, st)
}

// Users godoc
// @Summary Список пользователей
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Смещение"
// @Param limit query int false "Размер страницы"
// @Success 200 {array} models.User
// @Router /api/admin/users [get]
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Users")

	page, err := request.Page(r.URL.Query())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	users, err := h.svc.Users(r.Context(), page)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	render.JSON(w, r, users)
}

// ToggleAdmin godoc
// @Summary Переключить права администратора
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Попытка изменить собственные права"
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/users/{id}/toggle-admin [patch]
func (h *Handler) ToggleAdmin(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.ToggleAdmin")

	id, err := request.ID(r)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	actor := middlewarectx.UserFromContext(r.Context())
	if actor == nil {
		middlewarectx.Unauthorized(w, r)
		return
	}

	u, err := h.svc.ToggleAdmin(r.Context(), actor, id)
	if err != nil {
		h.writeUserError(w, r, log, err)
		return
	}
	render.JSON(w, r, response.Message("Admin status updated for user "+u.Email))
}

// SetActive godoc
// @Summary Активировать или деактивировать пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body SetActiveRequest true "Новый статус"
// @Success 200 {object} models.User
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/users/{id}/active [patch]
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.SetActive")

	id, err := request.ID(r)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	var req SetActiveRequest
	if err := request.DecodeJSON(r, h.validate, &req); err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	actor := middlewarectx.UserFromContext(r.Context())
	if actor == nil {
		middlewarectx.Unauthorized(w, r)
		return
	}

	u, err := h.svc.SetActive(r.Context(), actor, id, *req.IsActive)
	if err != nil {
		h.writeUserError(w, r, log, err)
		return
	}
	render.JSON(w, r, u)
}

// PendingDonations godoc
// @Summary Пожертвования в статусе pending
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Donation
// @Router /api/admin/donations/pending [get]
func (h *Handler) PendingDonations(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.PendingDonations")

	page, err := request.Page(r.URL.Query())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	res, err := h.svc.PendingDonations(r.Context(), page)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if res == nil {
		res = []*models.Donation{}
	}
	render.JSON(w, r, res)
}

func (h *Handler) writeUserError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := response.FromError(err)
	if status == http.StatusNotFound {
		body = response.Error("User not found")
	} else if status >= http.StatusInternalServerError {
		response.WriteError(w, r, log, err)
		return
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
