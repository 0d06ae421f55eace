package paymentsummary

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
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Summary(ctx context.Context, studentID string) (*models.PaymentSummary, error) {
	args := m.Called(ctx, studentID)
	if res := args.Get(0); res != nil {
		return res.(*models.PaymentSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSummaryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("uses id from token", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summary", mock.Anything, "s-1").
			Return(&models.PaymentSummary{TotalFee: 10000, Paid: 4000, Balance: 6000, History: []models.Payment{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/student/payments?student_id=someone-else", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "s-1"))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"balance":6000`)
		svc.AssertExpectations(t)
	})

	t.Run("error", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summary", mock.Anything, "s-1").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/student/payments", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "s-1"))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"status":"Error","error":"could not load payments"}`, w.Body.String())
	})
}
