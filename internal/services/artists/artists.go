// Package artists содержит бизнес-логику каталога артистов.
package artists

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// Repository хранилище артистов.
type Repository interface {
	CreateArtist(ctx context.Context, in models.ArtistCreate) (*models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	ListArtists(ctx context.Context, filter models.ArtistFilter) ([]*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, in models.ArtistUpdate) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

// Service CRUD артистов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(log *slog.Logger, repo Repository) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает страницу артистов.
func (s *Service) List(ctx context.Context, filter models.ArtistFilter) ([]*models.Artist, error) {
	const op = "artists.List"
	res, err := s.repo.ListArtists(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает артиста или models.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Artist, error) {
	const op = "artists.Get"
	res, err := s.repo.GetArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create сохраняет артиста. social_links должен быть корректным JSON.
func (s *Service) Create(ctx context.Context, in models.ArtistCreate) (*models.Artist, error) {
	const op = "artists.Create"
	if err := validateSocialLinks(in.SocialLinks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.CreateArtist(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("artist created", slog.Int64("id", res.ID))
	return res, nil
}

// Update частично обновляет артиста.
func (s *Service) Update(ctx context.Context, id int64, in models.ArtistUpdate) (*models.Artist, error) {
	const op = "artists.Update"
	if err := validateSocialLinks(in.SocialLinks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.UpdateArtist(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Delete удаляет артиста.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "artists.Delete"
	if err := s.repo.DeleteArtist(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("artist deleted", slog.Int64("id", id))
	return nil
}

func validateSocialLinks(links *string) error {
	if links == nil || *links == "" {
		return nil
	}
	if !json.Valid([]byte(*links)) {
		return fmt.Errorf("%w: social_links must be a JSON document", models.ErrValidation)
	}
	return nil
}
