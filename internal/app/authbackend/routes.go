// Package authbackend предоставляет маршруты для приложения аутентификации.
package authbackend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nikolausus/auth-backend/internal/http/handlers/auth/login"
	"github.com/nikolausus/auth-backend/internal/http/handlers/auth/register"
	"github.com/nikolausus/auth-backend/internal/http/handlers/data/list"
	"github.com/nikolausus/auth-backend/internal/http/handlers/health"
	"github.com/nikolausus/auth-backend/internal/http/middlewarectx"
	services "github.com/nikolausus/auth-backend/internal/services/auth"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *services.AuthService, tokenParser middlewarectx.TokenParser, readiness health.ReadinessChecker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
	})

	// Группа с JWT аутентификацией
	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
		r.Get("/data", list.New(logger, authService).ServeHTTP)
	})

	r.Get("/health", health.New(logger, readiness).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
