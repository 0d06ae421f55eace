package paymentpay

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
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/payment"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) PayNow(ctx context.Context, studentID string) (*models.PaymentSummary, error) {
	args := m.Called(ctx, studentID)
	if res := args.Get(0); res != nil {
		return res.(*models.PaymentSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPayHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "paid",
			userID: "s-1",
			setupMock: func(m *MockService) {
				m.On("PayNow", mock.Anything, "s-1").
					Return(&models.PaymentSummary{TotalFee: 10000, Paid: 10000, Balance: 0}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"balance":0`,
		},
		{
			name:   "nothing to pay",
			userID: "s-1",
			setupMock: func(m *MockService) {
				m.On("PayNow", mock.Anything, "s-1").Return(nil, services.ErrNothingToPay).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `nothing to pay`,
		},
		{
			name:   "storage error",
			userID: "s-1",
			setupMock: func(m *MockService) {
				m.On("PayNow", mock.Anything, "s-1").Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `payment failed`,
		},
		{
			name:           "no user in context",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/student/payments/pay", nil)
			if tt.userID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
