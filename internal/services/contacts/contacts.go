// Package contacts содержит бизнес-логику формы обратной связи.
package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/rabbitmq"
)

// Repository хранилище сообщений.
type Repository interface {
	CreateContactMessage(ctx context.Context, in models.ContactMessageCreate) (*models.ContactMessage, error)
	GetContactMessage(ctx context.Context, id int64) (*models.ContactMessage, error)
	ListContactMessages(ctx context.Context, filter models.ContactMessageFilter) ([]*models.ContactMessage, error)
	UpdateContactMessage(ctx context.Context, id int64, in models.ContactMessageUpdate) (*models.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id int64) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service управляет сообщениями обратной связи.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
}

// New создаёт Service.
func New(log *slog.Logger, repo Repository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher, log: log}
}

// List возвращает сообщения, новые первыми.
func (s *Service) List(ctx context.Context, filter models.ContactMessageFilter) ([]*models.ContactMessage, error) {
	const op = "contacts.List"
	res, err := s.repo.ListContactMessages(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает сообщение или models.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.ContactMessage, error) {
	const op = "contacts.Get"
	res, err := s.repo.GetContactMessage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create сохраняет сообщение и публикует contact.created.
func (s *Service) Create(ctx context.Context, in models.ContactMessageCreate) (*models.ContactMessage, error) {
	const op = "contacts.Create"

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	res, err := s.repo.CreateContactMessage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("contact message received", slog.Int64("id", res.ID))

	if err := s.publisher.Publish(ctx, rabbitmq.RoutingContactCreated, res); err != nil {
		s.log.Warn("failed to publish contact event", slog.Int64("id", res.ID), sl.Err(err))
	}
	return res, nil
}

// Update отмечает сообщение прочитанным.
func (s *Service) Update(ctx context.Context, id int64, in models.ContactMessageUpdate) (*models.ContactMessage, error) {
	const op = "contacts.Update"
	res, err := s.repo.UpdateContactMessage(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Delete удаляет сообщение.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "contacts.Delete"
	if err := s.repo.DeleteContactMessage(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
