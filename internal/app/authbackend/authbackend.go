// Package authbackend собирает HTTP-приложение аутентификации:
// хранилище, миграции, кодек токенов, сервис и маршруты.
package authbackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/nikolausus/auth-backend/internal/config"
	"github.com/nikolausus/auth-backend/internal/lib/jwt"
	"github.com/nikolausus/auth-backend/internal/migrations"
	services "github.com/nikolausus/auth-backend/internal/services/auth"
	"github.com/nikolausus/auth-backend/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New строит приложение из конфига: подключает базу, применяет миграции,
// создает кодек токенов и сервис, регистрирует маршруты.
// Конфиг передается явно, глобального состояния у приложения нет.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, jwtMaker)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, jwtMaker, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
