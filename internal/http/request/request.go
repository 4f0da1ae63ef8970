// Package request разбирает параметры HTTP-запросов: идентификаторы из пути,
// пагинацию и фильтры из query, тело JSON с валидацией.
package request

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// ErrBadBody тело запроса не является корректным JSON.
var ErrBadBody = errors.New("invalid request body")

// NewValidator создаёт валидатор, который называет поля по json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeJSON читает тело в dst и проверяет его валидатором v.
// Ошибки валидации возвращаются как validator.ValidationErrors.
func DecodeJSON(r *http.Request, v *validator.Validate, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return fmt.Errorf("%w: %s", ErrBadBody, err)
	}
	return v.Struct(dst)
}

// ID читает целочисленный параметр пути {id}.
func ID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", models.ErrValidation, raw)
	}
	return id, nil
}

// Page читает skip и limit.
func Page(q url.Values) (models.Page, error) {
	var p models.Page
	var err error
	if p.Skip, err = intParam(q, "skip"); err != nil {
		return p, err
	}
	if p.Limit, err = intParam(q, "limit"); err != nil {
		return p, err
	}
	if p.Skip < 0 || p.Limit < 0 {
		return p, fmt.Errorf("%w: skip and limit must not be negative", models.ErrValidation)
	}
	return p.Normalize(), nil
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, key)
	}
	return n, nil
}

// Bool читает необязательный булев параметр. nil означает, что параметр не задан.
func Bool(q url.Values, key string) (*bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", models.ErrValidation, key)
	}
	return &b, nil
}

// BoolDefault читает булев параметр со значением по умолчанию.
func BoolDefault(q url.Values, key string, def bool) (bool, error) {
	b, err := Bool(q, key)
	if err != nil || b == nil {
		return def, err
	}
	return *b, nil
}
