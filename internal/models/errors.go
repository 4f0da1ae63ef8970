package models

import "errors"

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation входные данные некорректны и могут быть исправлены клиентом.
	ErrValidation = errors.New("validation error")
)
