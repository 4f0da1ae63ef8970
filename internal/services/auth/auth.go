// Package auth содержит бизнес-логику регистрации, входа и проверки JWT,
// а также проверку прав администратора.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/metrics"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/password"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет пользователя; дубликат email возвращает models.ErrAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает пользователя или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Hasher хэширует и проверяет пароли.
type Hasher interface {
	GetHash(password string) (string, error)
	CompareHash(hash, password string) error
}

// Service отвечает за регистрацию, вход и валидацию JWT.
type Service struct {
	log      *slog.Logger
	users    UserRepository
	hasher   Hasher
	jwtMaker jwt.Maker
	metrics  *metrics.Metrics

	// dummyHash сравнивается с паролем при неизвестном email,
	// чтобы обе ветки отказа занимали одинаковое время.
	dummyHash string
}

// New создаёт Service. metrics может быть nil.
func New(log *slog.Logger, users UserRepository, hasher Hasher, jwtMaker jwt.Maker, m *metrics.Metrics) (*Service, error) {
	const op = "auth.New"

	dummy, err := hasher.GetHash("dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Service{
		log:       log,
		users:     users,
		hasher:    hasher,
		jwtMaker:  jwtMaker,
		metrics:   m,
		dummyHash: dummy,
	}, nil
}

// NormalizeEmail приводит email к каноническому виду перед поиском и вставкой.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт обычного активного пользователя.
func (s *Service) Register(ctx context.Context, email, rawPassword, fullName string) (*models.User, error) {
	const op = "auth.Register"
	email = NormalizeEmail(email)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(fullName),
		IsActive:     true,
		IsAdmin:      false,
	})
	if err != nil {
		// гонка двух регистраций разрешается уникальным индексом
		if errors.Is(err, models.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Login проверяет учётные данные и выпускает токен доступа.
// Неизвестный email, неверный пароль и деактивированная запись дают ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Login"
	email = NormalizeEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			_ = s.hasher.CompareHash(s.dummyHash, rawPassword)
			s.metrics.ObserveLogin(metrics.LoginFailure)
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		s.metrics.ObserveLogin(metrics.LoginError)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.hasher.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Warn("password verification failed", slog.Int64("user_id", user.ID), sl.Err(err))
		}
		s.metrics.ObserveLogin(metrics.LoginFailure)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if !user.IsActive {
		s.metrics.ObserveLogin(metrics.LoginFailure)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		s.metrics.ObserveLogin(metrics.LoginError)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveLogin(metrics.LoginSuccess)
	return token, nil
}

// IssueToken подписывает токен, subject которого равен email пользователя.
func (s *Service) IssueToken(user *models.User) (string, error) {
	const op = "auth.IssueToken"

	token, err := s.jwtMaker.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// VerifyToken возвращает активного пользователя, которому выдан token.
// Любой дефект токена даёт ErrUnauthenticated; ошибки хранилища возвращаются как есть.
func (s *Service) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.VerifyToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		s.log.Debug("token rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(claims.Subject))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}
	return user, nil
}

// RequireAdmin проверяет токен и требует признак администратора.
func (s *Service) RequireAdmin(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.RequireAdmin"

	user, err := s.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	return user, nil
}
