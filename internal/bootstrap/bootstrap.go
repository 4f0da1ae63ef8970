// Package bootstrap готовит базу при старте: создаёт администратора
// и заполняет пустые таблицы примерами артистов и мероприятий.
// Повторный запуск ничего не меняет.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

// Store операции хранилища, нужные при старте.
type Store interface {
	LockBootstrap(ctx context.Context) error
	CreateUserIfAbsent(ctx context.Context, user models.User) (*models.User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountArtists(ctx context.Context) (int64, error)
	CreateArtist(ctx context.Context, in models.ArtistCreate) (*models.Artist, error)
	CountEvents(ctx context.Context) (int64, error)
	CreateEvent(ctx context.Context, in models.EventCreate) (*models.Event, error)
}

// Hasher хэширует пароль администратора.
type Hasher interface {
	GetHash(password string) (string, error)
}

// Run создаёт администратора и, если включено, примеры данных.
// Store должен работать внутри транзакции: блокировка держится до её конца.
func Run(ctx context.Context, log *slog.Logger, cfg config.Admin, store Store, hasher Hasher) error {
	const op = "bootstrap.Run"

	if err := store.LockBootstrap(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := ensureAdmin(ctx, log, cfg, store, hasher); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !cfg.SeedSampleData {
		return nil
	}
	if err := seedArtists(ctx, log, store); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := seedEvents(ctx, log, store); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func ensureAdmin(ctx context.Context, log *slog.Logger, cfg config.Admin, store Store, hasher Hasher) error {
	email := auth.NormalizeEmail(cfg.AdminEmail)
	if email == "" {
		log.Warn("admin email is empty, skipping admin bootstrap")
		return nil
	}

	existing, err := store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsAdmin {
			log.Warn("admin email belongs to a regular account, admin user was not created",
				slog.String("email", email))
		}
		return nil
	case !errors.Is(err, models.ErrNotFound):
		return err
	}

	if cfg.AdminPassword == "" {
		log.Warn("admin password is not set, admin user was not created", slog.String("email", email))
		return nil
	}

	hash, err := hasher.GetHash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	_, created, err := store.CreateUserIfAbsent(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     cfg.AdminFullName,
		IsActive:     true,
		IsAdmin:      true,
	})
	if err != nil {
		return err
	}
	if !created {
		log.Warn("admin email was registered concurrently, admin user was not created",
			slog.String("email", email))
		return nil
	}
	log.Info("admin user created", slog.String("email", email))
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// SampleArtists артисты, добавляемые в пустую таблицу.
func SampleArtists() []models.ArtistCreate {
	return []models.ArtistCreate{
		{
			Name:       "DJ Khaled",
			Bio:        strPtr("Legendary hip-hop producer and DJ"),
			Genre:      strPtr("Hip-Hop"),
			ImageURL:   strPtr("https://example.com/dj-khaled.jpg"),
			IsFeatured: true,
		},
		{
			Name:       "Eminem",
			Bio:        strPtr("Pulitzer Prize-winning rapper"),
			Genre:      strPtr("Rap"),
			ImageURL:   strPtr("https://example.com/eminem.jpg"),
			IsFeatured: true,
		},
		{
			Name:       "Kendrick Lamar",
			Bio:        strPtr("Influential rapper and songwriter"),
			Genre:      strPtr("Hip-Hop"),
			ImageURL:   strPtr("https://example.com/kendrick.jpg"),
			IsFeatured: true,
		},
	}
}

// SampleEvents мероприятия, добавляемые в пустую таблицу.
func SampleEvents() []models.EventCreate {
	return []models.EventCreate{
		{
			Title:                "Hip-Hop for Humanity Festival",
			Description:          strPtr("Annual charity event bringing together artists and community"),
			Date:                 time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC),
			Location:             strPtr("Community Center, Local City"),
			ImageURL:             strPtr("https://example.com/event1.jpg"),
			RegistrationRequired: true,
			MaxAttendees:         intPtr(500),
		},
		{
			Title:       "Youth Hip-Hop Workshop",
			Description: strPtr("Educational workshop for young artists"),
			Date:        time.Date(2025, 2, 20, 14, 0, 0, 0, time.UTC),
			Location:    strPtr("Youth Center, Local City"),
			ImageURL:    strPtr("https://example.com/event2.jpg"),
		},
	}
}

func seedArtists(ctx context.Context, log *slog.Logger, store Store) error {
	n, err := store.CountArtists(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, a := range SampleArtists() {
		if _, err := store.CreateArtist(ctx, a); err != nil {
			return err
		}
	}
	log.Info("sample artists added")
	return nil
}

func seedEvents(ctx context.Context, log *slog.Logger, store Store) error {
	n, err := store.CountEvents(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, e := range SampleEvents() {
		if _, err := store.CreateEvent(ctx, e); err != nil {
			return err
		}
	}
	log.Info("sample events added")
	return nil
}
