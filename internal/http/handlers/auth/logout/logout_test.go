package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestLogoutHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		token          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "token revoked",
			token: "tok",
			setupMock: func(m *MockService) {
				m.On("SignOut", mock.Anything, "tok").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"redirect":"/"}}`,
		},
		{
			name:           "no token in context",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing token"}`,
		},
		{
			name:  "redis down",
			token: "tok",
			setupMock: func(m *MockService) {
				m.On("SignOut", mock.Anything, "tok").Return(errors.New("cache.Revoke: connection refused")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to sign out"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
			if tt.token != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Token, tt.token))
			}
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
