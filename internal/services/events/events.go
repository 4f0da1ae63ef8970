// Package events содержит бизнес-логику мероприятий фонда.
package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// Repository хранилище мероприятий.
type Repository interface {
	CreateEvent(ctx context.Context, in models.EventCreate) (*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, in models.EventUpdate) (*models.Event, error)
	DeactivateEvent(ctx context.Context, id int64) error
}

// Service CRUD мероприятий. Удаление мягкое.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(log *slog.Logger, repo Repository) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает страницу мероприятий.
func (s *Service) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	const op = "events.List"
	res, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает мероприятие или models.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Event, error) {
	const op = "events.Get"
	res, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create сохраняет новое мероприятие.
func (s *Service) Create(ctx context.Context, in models.EventCreate) (*models.Event, error) {
	const op = "events.Create"
	res, err := s.repo.CreateEvent(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("event created", slog.Int64("id", res.ID))
	return res, nil
}

// Update частично обновляет мероприятие.
func (s *Service) Update(ctx context.Context, id int64, in models.EventUpdate) (*models.Event, error) {
	const op = "events.Update"
	res, err := s.repo.UpdateEvent(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Delete снимает мероприятие с публикации (is_active=false).
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "events.Delete"
	if err := s.repo.DeactivateEvent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("event deactivated", slog.Int64("id", id))
	return nil
}
