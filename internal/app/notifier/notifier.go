// Package notifier собирает процесс, который читает события пожертвований и
// сообщений из RabbitMQ и пересылает их администратору по почте.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/smtp"
	"github.com/magabrotheeeer/foundation-backend/internal/rabbitmq"
	notifierservice "github.com/magabrotheeeer/foundation-backend/internal/services/notifier"
)

const (
	workersPerQueue = 4
	donationsQueue  = "foundation.donations"
	contactQueue    = "foundation.contact"
)

// App процесс уведомлений.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	service *notifierservice.Service
	logger  *slog.Logger
}

// New подключается к брокеру и объявляет очереди уведомлений.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.notifier.New"

	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("%s: rabbitmq url is empty", op)
	}
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%s: smtp host is empty", op)
	}
	to := cfg.NotifyTo
	if to == "" {
		to = cfg.AdminEmail
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.NotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.Qos(workersPerQueue*2, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	return &App{
		conn:    conn,
		ch:      ch,
		service: notifierservice.New(logger, transport, to),
		logger:  logger,
	}, nil
}

// Run обрабатывает очереди до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("notifier started",
		slog.String("donations_queue", donationsQueue), slog.String("contact_queue", contactQueue))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rabbitmq.ConsumeMessages(gctx, a.logger, a.ch, donationsQueue, workersPerQueue, a.service.DonationCreated)
	})
	g.Go(func() error {
		return rabbitmq.ConsumeMessages(gctx, a.logger, a.ch, contactQueue, workersPerQueue, a.service.ContactCreated)
	})
	err := g.Wait()

	a.logger.Info("notifier shutting down gracefully")
	if cerr := a.ch.Close(); cerr != nil && !errors.Is(cerr, amqp.ErrClosed) {
		a.logger.Error("failed to close channel", sl.Err(cerr))
	}
	if cerr := a.conn.Close(); cerr != nil && !errors.Is(cerr, amqp.ErrClosed) {
		a.logger.Error("failed to close connection", sl.Err(cerr))
	}
	return err
}
