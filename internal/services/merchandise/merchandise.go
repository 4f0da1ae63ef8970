// Package merchandise содержит бизнес-логику магазина фонда.
package merchandise

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// Repository хранилище товаров.
type Repository interface {
	CreateMerchandiseItem(ctx context.Context, in models.MerchandiseItemCreate) (*models.MerchandiseItem, error)
	GetMerchandiseItem(ctx context.Context, id int64) (*models.MerchandiseItem, error)
	ListMerchandise(ctx context.Context, filter models.MerchandiseFilter) ([]*models.MerchandiseItem, error)
	UpdateMerchandiseItem(ctx context.Context, id int64, in models.MerchandiseItemUpdate) (*models.MerchandiseItem, error)
	DeleteMerchandiseItem(ctx context.Context, id int64) error
}

// Service CRUD товаров.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(log *slog.Logger, repo Repository) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает страницу каталога.
func (s *Service) List(ctx context.Context, filter models.MerchandiseFilter) ([]*models.MerchandiseItem, error) {
	const op = "merchandise.List"
	res, err := s.repo.ListMerchandise(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает товар или models.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.MerchandiseItem, error) {
	const op = "merchandise.Get"
	res, err := s.repo.GetMerchandiseItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create сохраняет товар.
func (s *Service) Create(ctx context.Context, in models.MerchandiseItemCreate) (*models.MerchandiseItem, error) {
	const op = "merchandise.Create"
	res, err := s.repo.CreateMerchandiseItem(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("merchandise item created", slog.Int64("id", res.ID))
	return res, nil
}

// Update частично обновляет товар.
func (s *Service) Update(ctx context.Context, id int64, in models.MerchandiseItemUpdate) (*models.MerchandiseItem, error) {
	const op = "merchandise.Update"
	res, err := s.repo.UpdateMerchandiseItem(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Delete удаляет товар.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "merchandise.Delete"
	if err := s.repo.DeleteMerchandiseItem(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("merchandise item deleted", slog.Int64("id", id))
	return nil
}
