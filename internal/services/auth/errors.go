package auth

import "errors"

var (
	// ErrDuplicateEmail email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials неизвестный email, неверный пароль или деактивированная учётная запись.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrUnauthenticated токен отсутствует, недействителен или указывает на неактивного пользователя.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrForbidden у пользователя нет прав администратора.
	ErrForbidden = errors.New("not enough permissions")
)
