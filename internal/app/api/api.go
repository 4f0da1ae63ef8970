package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/foundation-backend/internal/bootstrap"
	"github.com/magabrotheeeer/foundation-backend/internal/cache"
	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/grpc/client"
	"github.com/magabrotheeeer/foundation-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/metrics"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/password"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/migrations"
	"github.com/magabrotheeeer/foundation-backend/internal/rabbitmq"
	adminservice "github.com/magabrotheeeer/foundation-backend/internal/services/admin"
	"github.com/magabrotheeeer/foundation-backend/internal/services/artists"
	authservice "github.com/magabrotheeeer/foundation-backend/internal/services/auth"
	"github.com/magabrotheeeer/foundation-backend/internal/services/contacts"
	"github.com/magabrotheeeer/foundation-backend/internal/services/donations"
	"github.com/magabrotheeeer/foundation-backend/internal/services/events"
	"github.com/magabrotheeeer/foundation-backend/internal/services/merchandise"
	"github.com/magabrotheeeer/foundation-backend/internal/services/news"
	"github.com/magabrotheeeer/foundation-backend/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// App HTTP-приложение фонда.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	closers []io.Closer
}

// New подключается к зависимостям, применяет миграции, выполняет
// начальную инициализацию данных и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "api.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{logger: logger, db: db}

	if err = migrations.Run(db.DB); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	version, dirty, err := migrations.Version(db.DB)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	hasher := password.NewHasher(cfg.BcryptCost)
	err = db.WithTx(ctx, func(tx *storage.Storage) error {
		return bootstrap.Run(ctx, logger, cfg.Admin, tx, hasher)
	})
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	authSvc, err := app.authService(cfg, db, hasher, m)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var newsCache news.Cache
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache)
		newsCache = redisCache
	} else {
		logger.Info("redis address is empty, news cache disabled")
	}

	publisher, err := app.publisher(ctx, cfg.RabbitMQ)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:           authSvc,
		Events:         events.New(logger, db),
		Artists:        artists.New(logger, db),
		Merchandise:    merchandise.New(logger, db),
		Donations:      donations.New(logger, db, publisher),
		Contacts:       contacts.New(logger, db, publisher),
		Admin:          adminservice.New(logger, db),
		News:           news.New(logger, cfg.News, newsCache),
		DB:             db,
		Metrics:        m,
		Registry:       reg,
		RateLimiter:    middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst),
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// authService возвращает удалённый gRPC-клиент, если задан адрес сервиса
// аутентификации, иначе проверяет токены внутри процесса.
func (a *App) authService(cfg *config.Config, db *storage.Storage, hasher *password.Hasher, m *metrics.Metrics) (AuthService, error) {
	if cfg.GRPCAuthAddress != "" {
		authClient, err := client.NewAuthClient(cfg.GRPCAuthAddress)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, authClient)
		a.logger.Info("using remote auth service", slog.String("address", cfg.GRPCAuthAddress))
		return authClient, nil
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, jwt.WithIssuer(cfg.Issuer))
	svc, err := authservice.New(a.logger, db, hasher, jwtMaker, m)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (a *App) publisher(ctx context.Context, cfg config.RabbitMQ) (Publisher, error) {
	if cfg.URL == "" {
		a.logger.Info("rabbitmq url is empty, event publishing disabled")
		return rabbitmq.Noop{}, nil
	}

	conn, err := rabbitmq.Connect(ctx, cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.NotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p := rabbitmq.NewPublisher(ch, cfg.Exchange)
	a.closers = append(a.closers, p, amqpConn{conn})
	return p, nil
}

// amqpConn приводит *amqp.Connection к io.Closer.
type amqpConn struct{ conn *amqp.Connection }

func (c amqpConn) Close() error { return c.conn.Close() }

// Handler возвращает корневой обработчик сервера.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы в порядке, обратном открытию.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
