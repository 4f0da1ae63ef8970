// Package auth собирает gRPC-сервис аутентификации.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/grpc/authrpc"
	"github.com/magabrotheeeer/foundation-backend/internal/grpc/server"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/password"
	authservices "github.com/magabrotheeeer/foundation-backend/internal/services/auth"
	"github.com/magabrotheeeer/foundation-backend/internal/storage"
)

// App gRPC-приложение аутентификации.
type App struct {
	grpcServer *grpc.Server
	listener   net.Listener
	logger     *slog.Logger
	db         *storage.Storage
}

// New подключается к базе пользователей и открывает порт GRPCAuthAddress.
// Миграции и создание администратора выполняет HTTP-приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.auth.New"

	if cfg.GRPCAuthAddress == "" {
		return nil, fmt.Errorf("%s: grpc_auth_address is empty", op)
	}

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, jwt.WithIssuer(cfg.Issuer))
	authService, err := authservices.New(logger, db, password.NewHasher(cfg.BcryptCost), jwtMaker, nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lis, err := net.Listen("tcp", cfg.GRPCAuthAddress)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grpcServer := grpc.NewServer()
	authrpc.RegisterAuthServiceServer(grpcServer, server.NewAuthServer(authService, logger))

	return &App{
		grpcServer: grpcServer,
		listener:   lis,
		logger:     logger,
		db:         db,
	}, nil
}

// Run обслуживает запросы до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Auth gRPC service listening on", slog.String("address", a.listener.Addr().String()))
		errCh <- a.grpcServer.Serve(a.listener)
	}()

	defer func() {
		_ = a.db.Close()
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("stopping auth gRPC service gracefully")
		a.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}
