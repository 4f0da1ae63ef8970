// Package middlewarectx содержит HTTP middleware: проверку JWT и прав
// администратора, ограничение частоты запросов, метрики и логирование.
//
// Authenticate и RequireAdmin кладут в контекст запроса пользователя,
// которого затем получают обработчики через UserFromContext.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foundation-backend/internal/http/response"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ текущего пользователя в контексте.
const User Key = "user"

// Authenticator проверяет токены. Реализуется auth.Service и gRPC-клиентом.
type Authenticator interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
	RequireAdmin(ctx context.Context, token string) (*models.User, error)
}

// WithUser возвращает контекст с пользователем.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, User, u)
}

// UserFromContext возвращает пользователя, положенного middleware, или nil.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(User).(*models.User)
	return u
}

// BearerToken извлекает токен из заголовка Authorization.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// Authenticate пропускает только запросы с действительным токеном.
func Authenticate(log *slog.Logger, a Authenticator) func(http.Handler) http.Handler {
	return gate(log, "middlewarectx.Authenticate", a.VerifyToken)
}

// RequireAdmin пропускает только администраторов: 401 без токена, 403 без прав.
func RequireAdmin(log *slog.Logger, a Authenticator) func(http.Handler) http.Handler {
	return gate(log, "middlewarectx.RequireAdmin", a.RequireAdmin)
}

func gate(log *slog.Logger, op string, check func(context.Context, string) (*models.User, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := BearerToken(r)
			if !ok {
				log.Debug("missing or invalid authorization header")
				Unauthorized(w, r)
				return
			}

			user, err := check(r.Context(), token)
			if err != nil {
				status, body := response.FromError(err)
				switch status {
				case http.StatusUnauthorized:
					log.Debug("token rejected", sl.Err(err))
					Unauthorized(w, r)
				case http.StatusForbidden:
					log.Warn("admin access denied", sl.Err(err))
					render.Status(r, status)
					render.JSON(w, r, body)
				default:
					log.Error("failed to verify token", sl.Err(err))
					render.Status(r, status)
					render.JSON(w, r, body)
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth кладёт пользователя в контекст, если токен действителен,
// и пропускает анонимный запрос в остальных случаях.
func OptionalAuth(log *slog.Logger, a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			user, err := a.VerifyToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) {
					log.Warn("optional auth failed", sl.Err(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// Unauthorized отвечает 401 с заголовком WWW-Authenticate.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	_, body := response.FromError(auth.ErrUnauthenticated)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, body)
}
