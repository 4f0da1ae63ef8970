// Package me отдаёт текущего пользователя.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foundation-backend/internal/http/middlewarectx"
)

// New возвращает обработчик GET /auth/me. Должен стоять за middlewarectx.Authenticate.
//
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/me [get]
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewarectx.UserFromContext(r.Context())
		if user == nil {
			log.Error("user missing in context")
			middlewarectx.Unauthorized(w, r)
			return
		}
		render.JSON(w, r, user)
	}
}
