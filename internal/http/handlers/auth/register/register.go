// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foundation-backend/internal/http/request"
	"github.com/magabrotheeeer/foundation-backend/internal/http/response"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// maxPasswordBytes предел длины пароля в байтах.
const maxPasswordBytes = 4096

// Request входные данные для регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"max=255"`
}

// Service регистрирует пользователей.
type Service interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
}

// Handler обрабатывает POST /auth/register.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} models.User
// @Failure 400 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := request.DecodeJSON(r, h.validate, &req); err != nil {
		log.Debug("invalid register request", slog.String("error", err.Error()))
		response.WriteError(w, r, log, err)
		return
	}
	if len(req.Password) > maxPasswordBytes {
		log.Debug("password too long", slog.Int("bytes", len(req.Password)))
		response.WriteError(w, r, log, fmt.Errorf("%s: %w: field password must be at most %d bytes",
			op, models.ErrValidation, maxPasswordBytes))
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		log.Info("registration failed", slog.String("error", err.Error()))
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}
