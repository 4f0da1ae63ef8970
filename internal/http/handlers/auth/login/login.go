// Package login реализует HTTP-обработчик входа.
//
// Принимается форма OAuth2 password flow (username и password, где username это email)
// или JSON с теми же полями. В ответ отдаётся bearer-токен.
package login

import (
	"context"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foundation-backend/internal/http/request"
	"github.com/magabrotheeeer/foundation-backend/internal/http/response"
)

const maxFormMemory = 1 << 20

// Request учётные данные.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response выданный токен.
type Response struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// Service выполняет вход.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает POST /auth/login.
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
// @Summary Вход
// @Description Проверяет email и пароль, возвращает JWT.
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param username formData string true "Email"
// @Param password formData string true "Пароль"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req, err := h.parse(r)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Info("login failed", slog.String("error", err.Error()))
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, Response{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) parse(r *http.Request) (Request, error) {
	var req Request

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := request.DecodeJSON(r, h.validate, &req); err != nil {
			return req, err
		}
		return req, nil
	}

	var err error
	if ct == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return req, request.ErrBadBody
	}
	req.Username = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")
	return req, h.validate.Struct(req)
}
