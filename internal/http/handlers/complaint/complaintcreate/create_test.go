package complaintcreate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/complaint"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, studentID string, req models.DummyComplaint) (*models.Complaint, error) {
	args := m.Called(ctx, studentID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "created",
			body: `{"title":"Fan","description":"broken"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "s-1", models.DummyComplaint{Title: "Fan", Description: "broken"}).
					Return(&models.Complaint{ID: 1, StudentID: "s-1", Title: "Fan", Description: "broken", Status: models.ComplaintOpen}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"Open"`,
		},
		{
			name:           "missing description",
			body:           `{"title":"Fan"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Description is a required field`,
		},
		{
			name: "whitespace only",
			body: `{"title":"  ","description":"  "}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "s-1", mock.Anything).Return(nil, services.ErrEmptyFields).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `title and description are required`,
		},
		{
			name:           "broken json",
			body:           `{"title":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name: "storage error",
			body: `{"title":"Fan","description":"broken"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "s-1", mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create complaint`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/student/complaints", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "s-1"))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
