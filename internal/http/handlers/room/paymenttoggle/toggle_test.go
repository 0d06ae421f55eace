package paymenttoggle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/room"
)

const studentID = "9b2f8c1e-5a6d-4c3b-8e7f-1a2b3c4d5e6f"

type MockService struct {
	mock.Mock
}

func (m *MockService) TogglePayment(ctx context.Context, studentID string) ([]models.RoomRoster, error) {
	args := m.Called(ctx, studentID)
	if res := args.Get(0); res != nil {
		return res.([]models.RoomRoster), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestToggleHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		studentID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "toggled",
			studentID: studentID,
			setupMock: func(m *MockService) {
				m.On("TogglePayment", mock.Anything, studentID).Return([]models.RoomRoster{{
					Room:     models.Room{ID: 1, RoomNumber: "101"},
					Students: []models.RosterStudent{{ID: studentID, Name: "Asha", PaymentStatus: models.PaymentPaid, AmountPaid: 10000}},
				}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"payment_status":"Paid"`,
		},
		{
			name:           "invalid id",
			studentID:      "not-a-uuid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid student id`,
		},
		{
			name:      "unknown student",
			studentID: studentID,
			setupMock: func(m *MockService) {
				m.On("TogglePayment", mock.Anything, studentID).Return(nil, services.ErrStudentNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `student not found`,
		},
		{
			name:      "storage error",
			studentID: studentID,
			setupMock: func(m *MockService) {
				m.On("TogglePayment", mock.Anything, studentID).Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not update payment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/payments/"+tt.studentID+"/toggle", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("studentID", tt.studentID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
