package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ReadinessCheckerMock struct {
	mock.Mock
}

func (m *ReadinessCheckerMock) CheckDatabaseReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		readinessErr   error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "database ready",
			readinessErr:   nil,
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:           "database unavailable",
			readinessErr:   errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(ReadinessCheckerMock)
			checker.On("CheckDatabaseReady", mock.Anything).Return(tt.readinessErr)

			handler := New(newNoopLogger(), checker)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body["status"])

			checker.AssertExpectations(t)
		})
	}
}
