// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foundation-backend/internal/http/request"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/admin"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// MessageResponse тело ответа без данных.
type MessageResponse struct {
	Message string `json:"message" example:"Artist deleted successfully"`
}

// StatusError значение статуса для ответа с ошибкой.
const StatusError = "Error"

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// Message возвращает MessageResponse.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст, тексты объединяются через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		field := err.Field()
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", field))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", field))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid URL", field))
		case "min", "len":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", field))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", field))
		case "gt", "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", field, orEqual(err.ActualTag(), err.Param())))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", field, err.Param()))
		case "alpha":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only letters", field))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", field))
		}
	}
	return ErrorResponse{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

func orEqual(tag, param string) string {
	if tag == "gte" {
		return "or equal to " + param
	}
	return param
}

// FromError подбирает HTTP-статус и текст для доменной ошибки.
// Неизвестные ошибки отдаются как 500 без подробностей.
func FromError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Error("not found")
	case errors.Is(err, auth.ErrDuplicateEmail):
		return http.StatusBadRequest, Error("Email already registered")
	case errors.Is(err, models.ErrAlreadyExists):
		return http.StatusConflict, Error("already exists")
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity, Error(unwrapMessage(err))
	case errors.Is(err, admin.ErrSelfModification):
		return http.StatusBadRequest, Error(admin.ErrSelfModification.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error("Incorrect email or password")
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, Error("Could not validate credentials")
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, Error("Not enough permissions")
	default:
		return http.StatusInternalServerError, Error("internal server error")
	}
}

// WriteError отвечает клиенту по err. Ошибки 5xx пишутся в log с причиной.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ValidationError(verrs))
		return
	}
	if errors.Is(err, request.ErrBadBody) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error(request.ErrBadBody.Error()))
		return
	}

	status, body := FromError(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}

// unwrapMessage отрезает префиксы op из цепочки ошибок валидации.
func unwrapMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
