package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nikolausus/auth-backend/internal/storage/repository"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, username, password string) (int64, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUserID     int64
		mockErr        error
		wantStatusCode int
		wantUserID     float64
		wantMessage    string
		wantError      string
	}{
		{
			name:           "valid registration",
			requestBody:    Request{Username: "alice", Password: "hunter2"},
			mockUserID:     1,
			mockErr:        nil,
			wantStatusCode: http.StatusCreated,
			wantUserID:     1,
			wantMessage:    "user registered",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "missing username",
			requestBody:    Request{Password: "hunter2"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Username is a required field",
		},
		{
			name:           "missing password",
			requestBody:    Request{Username: "alice"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Password is a required field",
		},
		{
			name:           "password shorter than 5 characters",
			requestBody:    Request{Username: "alice", Password: "abcd"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Password is shorter than 5 characters",
		},
		{
			name:           "duplicate username",
			requestBody:    Request{Username: "alice", Password: "hunter2"},
			mockUserID:     0,
			mockErr:        repository.ErrUsernameTaken,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "username is already taken",
		},
		{
			name:           "storage error",
			requestBody:    Request{Username: "alice", Password: "hunter2"},
			mockUserID:     0,
			mockErr:        errors.New("connection refused"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockUserID != 0 || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				serviceMock.On("Register", mock.Anything, req.Username, req.Password).
					Return(tt.mockUserID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
				assert.NotContains(t, got, "user_id")
			} else {
				assert.Equal(t, tt.wantMessage, got["message"])
				assert.Equal(t, tt.wantUserID, got["user_id"])
				// пароль и хэш в ответ не попадают
				assert.NotContains(t, rec.Body.String(), "hunter2")
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
