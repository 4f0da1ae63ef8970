// Package resource реализует CRUD-обработчики для ресурсов сайта:
// мероприятий, артистов, товаров, пожертвований и сообщений.
// Ресурсы различаются только типами, фильтром списка и подготовкой
// данных перед созданием.
package resource

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foundation-backend/internal/http/request"
	"github.com/magabrotheeeer/foundation-backend/internal/http/response"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// Service CRUD-операции ресурса.
// T запись, C данные создания, U частичное обновление, F фильтр списка.
type Service[T, C, U, F any] interface {
	List(ctx context.Context, filter F) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id int64, in U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Options настройки ресурса.
type Options[C, F any] struct {
	// Name используется в сообщениях: "<Name> not found", "<Name> deleted successfully".
	Name string
	// Filter строит фильтр списка из query-параметров.
	Filter func(q url.Values, page models.Page) (F, error)
	// BeforeCreate дополняет входные данные из запроса, например id автора.
	BeforeCreate func(r *http.Request, in *C)
}

// Handler набор обработчиков одного ресурса.
type Handler[T, C, U, F any] struct {
	log      *slog.Logger
	svc      Service[T, C, U, F]
	validate *validator.Validate
	opts     Options[C, F]
}

// New создаёт Handler.
func New[T, C, U, F any](log *slog.Logger, svc Service[T, C, U, F], opts Options[C, F]) *Handler[T, C, U, F] {
	return &Handler[T, C, U, F]{
		log:      log,
		svc:      svc,
		validate: request.NewValidator(),
		opts:     opts,
	}
}

func (h *Handler[T, C, U, F]) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler[T, C, U, F]) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, models.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(h.opts.Name+" not found"))
		return
	}
	response.WriteError(w, r, log, err)
}

// List GET /: страница записей по фильтру.
func (h *Handler[T, C, U, F]) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.resource.List")

	q := r.URL.Query()
	page, err := request.Page(q)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	filter, err := h.opts.Filter(q, page)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	if items == nil {
		items = []*T{}
	}
	render.JSON(w, r, items)
}

// Get GET /{id}.
func (h *Handler[T, C, U, F]) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.resource.Get")

	id, err := request.ID(r)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	render.JSON(w, r, item)
}

// Create POST /: 201 и созданная запись.
func (h *Handler[T, C, U, F]) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.resource.Create")

	var in C
	if err := request.DecodeJSON(r, h.validate, &in); err != nil {
		log.Debug("invalid request", slog.String("error", err.Error()))
		h.fail(w, r, log, err)
		return
	}
	if h.opts.BeforeCreate != nil {
		h.opts.BeforeCreate(r, &in)
	}

	item, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

// Update PUT /{id}: меняются только переданные поля.
func (h *Handler[T, C, U, F]) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.resource.Update")

	id, err := request.ID(r)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	var in U
	if err := request.DecodeJSON(r, h.validate, &in); err != nil {
		h.fail(w, r, log, err)
		return
	}

	item, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	render.JSON(w, r, item)
}

// Delete DELETE /{id}.
func (h *Handler[T, C, U, F]) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.resource.Delete")

	id, err := request.ID(r)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, log, err)
		return
	}
	log.Info("record deleted", slog.String("resource", h.opts.Name), slog.Int64("id", id))
	render.JSON(w, r, response.Message(h.opts.Name+" deleted successfully"))
}
