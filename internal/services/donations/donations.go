// Package donations содержит бизнес-логику пожертвований.
package donations

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/rabbitmq"
)

// DefaultCurrency валюта, если клиент её не указал.
const DefaultCurrency = "USD"

// Repository хранилище пожертвований.
type Repository interface {
	CreateDonation(ctx context.Context, in models.DonationCreate) (*models.Donation, error)
	GetDonation(ctx context.Context, id int64) (*models.Donation, error)
	ListDonations(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, error)
	UpdateDonation(ctx context.Context, id int64, in models.DonationUpdate) (*models.Donation, error)
	DeleteDonation(ctx context.Context, id int64) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service управляет пожертвованиями.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
	newID     func() string
}

// New создаёт Service.
func New(log *slog.Logger, repo Repository, publisher Publisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		newID:     uuid.NewString,
	}
}

// List возвращает пожертвования, новые первыми.
func (s *Service) List(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, error) {
	const op = "donations.List"
	res, err := s.repo.ListDonations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает пожертвование или models.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Donation, error) {
	const op = "donations.Get"
	res, err := s.repo.GetDonation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create сохраняет пожертвование и публикует donation.created.
// Без transaction_id генерируется UUID. Ошибка публикации не отменяет сохранение.
func (s *Service) Create(ctx context.Context, in models.DonationCreate) (*models.Donation, error) {
	const op = "donations.Create"

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if in.TransactionID == nil || *in.TransactionID == "" {
		id := s.newID()
		in.TransactionID = &id
	}
	in.DonorEmail = strings.ToLower(strings.TrimSpace(in.DonorEmail))

	res, err := s.repo.CreateDonation(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("donation created", slog.Int64("id", res.ID), slog.Float64("amount", res.Amount))

	if err := s.publisher.Publish(ctx, rabbitmq.RoutingDonationCreated, res); err != nil {
		s.log.Warn("failed to publish donation event", slog.Int64("id", res.ID), sl.Err(err))
	}
	return res, nil
}

// Update меняет статус пожертвования.
func (s *Service) Update(ctx context.Context, id int64, in models.DonationUpdate) (*models.Donation, error) {
	const op = "donations.Update"
	res, err := s.repo.UpdateDonation(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Delete удаляет пожертвование.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "donations.Delete"
	if err := s.repo.DeleteDonation(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
