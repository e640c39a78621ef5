// Package health реализует проверку работоспособности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/nikolausus/auth-backend/internal/lib/sl"
)

// ReadinessChecker проверяет готовность зависимостей сервиса.
type ReadinessChecker interface {
	CheckDatabaseReady(ctx context.Context) error
}

type Handler struct {
	log       *slog.Logger
	readiness ReadinessChecker
}

func New(log *slog.Logger, readiness ReadinessChecker) *Handler {
	return &Handler{
		log:       log,
		readiness: readiness,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.readiness.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("readiness check failed", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]any{
			"status": "degraded",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, map[string]any{
		"status": "ok",
	})
}
