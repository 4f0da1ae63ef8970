// Package main Hip-Hop Foundation API
//
// @title           Hip-Hop Foundation API
// @version         1.0
// @description     API сайта фонда: мероприятия, артисты, пожертвования, обратная связь, магазин и новости
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  admin@hiphopfoundation.org

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/foundation-backend/internal/app/api"
	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting foundation-api", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := api.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("foundation-api stopped gracefully")
}
