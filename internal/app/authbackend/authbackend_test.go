package authbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nikolausus/auth-backend/internal/lib/jwt"
	"github.com/nikolausus/auth-backend/internal/migrations"
	services "github.com/nikolausus/auth-backend/internal/services/auth"
	"github.com/nikolausus/auth-backend/internal/storage/repository"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// setupTestServer поднимает PostgreSQL в контейнере, применяет миграции
// и собирает полный HTTP-стек приложения.
func setupTestServer(t *testing.T) (*httptest.Server, *repository.Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := repository.New(ctx, connStr)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db.DB, migrationsPath))

	jwtMaker, err := jwt.NewJWTMaker("e2e_test_secret", "HS256", 5*time.Hour)
	require.NoError(t, err)

	authService := services.NewAuthService(db, jwtMaker)

	router := chi.NewRouter()
	RegisterRoutes(router, newNoopLogger(), authService, jwtMaker, db)

	srv := httptest.NewServer(router)

	cleanup := func() {
		srv.Close()
		_ = db.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return srv, db, cleanup
}

func postJSON(t *testing.T, url string, payload map[string]string) (*http.Response, map[string]any) {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	require.NoError(t, resp.Body.Close())
	return resp, decoded
}

func getWithToken(t *testing.T, url, token string) (*http.Response, map[string]any) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	require.NoError(t, resp.Body.Close())
	return resp, decoded
}

func TestApp_RegisterLoginListFlow(t *testing.T) {
	srv, _, cleanup := setupTestServer(t)
	defer cleanup()

	// регистрация
	resp, body := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"username": "alice", "password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["user_id"])

	// повторная регистрация того же имени
	resp, body = postJSON(t, srv.URL+"/auth/register", map[string]string{
		"username": "alice", "password": "another",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "username is already taken", body["error"])

	// короткий пароль
	resp, _ = postJSON(t, srv.URL+"/auth/register", map[string]string{
		"username": "bob", "password": "abcd",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// вход с неверным паролем
	resp, body = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid username or password", body["error"])

	// вход с неизвестным именем — ответ тот же самый
	resp, ghostBody := postJSON(t, srv.URL+"/auth/login", map[string]string{
		"username": "ghost", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, body, ghostBody)

	// успешный вход
	resp, body = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"username": "alice", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer", body["token_type"])
	token, ok := body["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// защищенный список без токена
	resp, _ = getWithToken(t, srv.URL+"/api/data", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// защищенный список с токеном
	resp, body = getWithToken(t, srv.URL+"/api/data", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["current_user"])
	assert.GreaterOrEqual(t, body["total"].(float64), float64(1))

	data := body["data"].([]any)
	found := false
	for _, item := range data {
		if item.(map[string]any)["username"] == "alice" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestApp_HealthAndMetrics(t *testing.T) {
	srv, db, cleanup := setupTestServer(t)
	defer cleanup()

	resp, body := getWithToken(t, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)

	// после потери базы /health отвечает degraded
	require.NoError(t, db.DB.Close())

	resp, body = getWithToken(t, srv.URL+"/health", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", body["status"])
}
