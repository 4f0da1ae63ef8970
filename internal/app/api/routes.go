// Package api собирает HTTP-приложение фонда: маршруты, middleware и зависимости.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация документа swagger.
	_ "github.com/magabrotheeeer/foundation-backend/internal/docs"

	adminhandler "github.com/magabrotheeeer/foundation-backend/internal/http/handlers/admin"
	"github.com/magabrotheeeer/foundation-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/foundation-backend/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/foundation-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/foundation-backend/internal/http/handlers/health"
	newshandler "github.com/magabrotheeeer/foundation-backend/internal/http/handlers/news"
	"github.com/magabrotheeeer/foundation-backend/internal/http/handlers/resource"
	"github.com/magabrotheeeer/foundation-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/metrics"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// AuthService аутентификация: локальный auth.Service или gRPC-клиент.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.Authenticator
}

type (
	eventService       = resource.Service[models.Event, models.EventCreate, models.EventUpdate, models.EventFilter]
	artistService      = resource.Service[models.Artist, models.ArtistCreate, models.ArtistUpdate, models.ArtistFilter]
	merchandiseService = resource.Service[models.MerchandiseItem, models.MerchandiseItemCreate, models.MerchandiseItemUpdate, models.MerchandiseFilter]
	donationService    = resource.Service[models.Donation, models.DonationCreate, models.DonationUpdate, models.DonationFilter]
	contactService     = resource.Service[models.ContactMessage, models.ContactMessageCreate, models.ContactMessageUpdate, models.ContactMessageFilter]
)

// Deps зависимости маршрутов.
type Deps struct {
	Auth        AuthService
	Events      eventService
	Artists     artistService
	Merchandise merchandiseService
	Donations   donationService
	Contacts    contactService
	Admin       adminhandler.Service
	News        newshandler.Service
	// DB проверяется в /health; nil отключает проверку.
	DB health.Pinger

	Metrics        *metrics.Metrics
	Registry       *prometheus.Registry
	RateLimiter    *middlewarectx.RateLimiter
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middlewarectx.Logger(logger),
		middleware.Recoverer,
		corsHandler(d.AllowedOrigins),
		middlewarectx.Metrics(d.Metrics),
	)
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	authn := middlewarectx.Authenticate(logger, d.Auth)
	adminOnly := middlewarectx.RequireAdmin(logger, d.Auth)
	optional := middlewarectx.OptionalAuth(logger, d.Auth)
	limited := middlewarectx.RateLimitMiddleware(logger, d.RateLimiter)

	healthHandler := health.New(logger, d.DB)
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limited).Post("/register", register.New(logger, d.Auth).ServeHTTP)
			r.With(limited).Post("/login", login.New(logger, d.Auth).ServeHTTP)
			r.With(authn).Get("/me", me.New(logger))
		})

		r.Route("/events", func(r chi.Router) {
			h := resource.New(logger, d.Events, resource.Options[models.EventCreate, models.EventFilter]{
				Name: "Event", Filter: resource.EventFilter,
			})
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", h.Create)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})
		})

		r.Route("/artists", func(r chi.Router) {
			h := resource.New(logger, d.Artists, resource.Options[models.ArtistCreate, models.ArtistFilter]{
				Name: "Artist", Filter: resource.ArtistFilter,
			})
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", h.Create)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})
		})

		r.Route("/merchandise", func(r chi.Router) {
			h := resource.New(logger, d.Merchandise, resource.Options[models.MerchandiseItemCreate, models.MerchandiseFilter]{
				Name: "Merchandise item", Filter: resource.MerchandiseFilter,
			})
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", h.Create)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})
		})

		r.Route("/donations", func(r chi.Router) {
			h := resource.New(logger, d.Donations, resource.Options[models.DonationCreate, models.DonationFilter]{
				Name: "Donation", Filter: resource.DonationFilter, BeforeCreate: resource.SetDonor,
			})
			r.With(optional).Post("/", h.Create)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", h.List)
				r.Get("/{id}", h.Get)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			h := resource.New(logger, d.Contacts, resource.Options[models.ContactMessageCreate, models.ContactMessageFilter]{
				Name: "Message", Filter: resource.ContactFilter, BeforeCreate: resource.SetSender,
			})
			r.With(optional).Post("/", h.Create)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", h.List)
				r.Get("/{id}", h.Get)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly)
			h := adminhandler.New(logger, d.Admin)
			r.Get("/stats", h.Stats)
			r.Get("/users", h.Users)
			r.Patch("/users/{id}/toggle-admin", h.ToggleAdmin)
			r.Patch("/users/{id}/active", h.SetActive)
			r.Get("/donations/pending", h.PendingDonations)
		})

		r.Route("/news", func(r chi.Router) {
			h := newshandler.New(logger, d.News)
			r.Get("/", h.Articles)
			r.Get("/sources", h.Sources)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: !allowAll,
		MaxAge:           300,
	})
}
