// Package list реализует защищённый HTTP-обработчик перечня пользователей.
//
// Обработчик полагается на то, что middleware уже проверил токен и положил
// имя пользователя в контекст; подпись здесь повторно не проверяется.
package list

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nikolausus/auth-backend/internal/http/middlewarectx"
	"github.com/nikolausus/auth-backend/internal/http/response"
	"github.com/nikolausus/auth-backend/internal/lib/sl"
	"github.com/nikolausus/auth-backend/internal/models"
)

// UserInfo — сведения об одном пользователе в ответе.
// Username экранируется для безопасной вставки в HTML на стороне клиента.
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// Response — структура ответа со списком пользователей.
type Response struct {
	Data        []UserInfo `json:"data"`
	Total       int        `json:"total"`
	CurrentUser string     `json:"current_user"`
}

// Service описывает интерфейс бизнес-логики перечня пользователей.
type Service interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Handler обрабатывает HTTP-запросы на перечень пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает всех пользователей в порядке создания. Требует JWT.
// @Tags Data
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response "Список пользователей"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/data [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.data.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authorization required"))
		return
	}

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	data := make([]UserInfo, 0, len(users))
	for _, u := range users {
		data = append(data, UserInfo{
			ID:        u.ID,
			Username:  html.EscapeString(u.Username),
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	log.Info("list users", slog.Int("count", len(data)))
	render.JSON(w, r, Response{
		Data:        data,
		Total:       len(data),
		CurrentUser: username,
	})
}
