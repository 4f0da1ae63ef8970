// Package admin содержит операции панели администратора.
// Проверка прав выполняется до вызова: все методы ожидают уже авторизованного администратора.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// ErrSelfModification администратор пытается снять права или деактивировать самого себя.
var ErrSelfModification = errors.New("administrators cannot change their own admin or active status")

// Repository данные, нужные панели администратора.
type Repository interface {
	GetSiteStats(ctx context.Context) (*models.SiteStats, error)
	ListUsers(ctx context.Context, page models.Page) ([]*models.User, error)
	ToggleUserAdmin(ctx context.Context, id int64) (*models.User, error)
	SetUserActive(ctx context.Context, id int64, isActive bool) (*models.User, error)
	ListDonations(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, error)
}

// Service операции администратора.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(log *slog.Logger, repo Repository) *Service {
	return &Service{repo: repo, log: log}
}

// Stats сводка по сайту.
func (s *Service) Stats(ctx context.Context) (*models.SiteStats, error) {
	const op = "admin.Stats"
	st, err := s.repo.GetSiteStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// Users список пользователей.
func (s *Service) Users(ctx context.Context, page models.Page) ([]*models.User, error) {
	const op = "admin.Users"
	users, err := s.repo.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// ToggleAdmin инвертирует признак администратора у пользователя id.
func (s *Service) ToggleAdmin(ctx context.Context, actor *models.User, id int64) (*models.User, error) {
	const op = "admin.ToggleAdmin"
	if actor.ID == id {
		return nil, fmt.Errorf("%s: %w", op, ErrSelfModification)
	}
	u, err := s.repo.ToggleUserAdmin(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin flag toggled",
		slog.Int64("actor_id", actor.ID), slog.Int64("user_id", id), slog.Bool("is_admin", u.IsAdmin))
	return u, nil
}

// SetActive активирует или деактивирует пользователя id.
// Деактивация немедленно делает недействительными все его токены.
func (s *Service) SetActive(ctx context.Context, actor *models.User, id int64, isActive bool) (*models.User, error) {
	const op = "admin.SetActive"
	if actor.ID == id && !isActive {
		return nil, fmt.Errorf("%s: %w", op, ErrSelfModification)
	}
	u, err := s.repo.SetUserActive(ctx, id, isActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user active flag changed",
		slog.Int64("actor_id", actor.ID), slog.Int64("user_id", id), slog.Bool("is_active", isActive))
	return u, nil
}

// PendingDonations пожертвования в статусе pending.
func (s *Service) PendingDonations(ctx context.Context, page models.Page) ([]*models.Donation, error) {
	const op = "admin.PendingDonations"
	res, err := s.repo.ListDonations(ctx, models.DonationFilter{Status: models.DonationPending, Page: page})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
