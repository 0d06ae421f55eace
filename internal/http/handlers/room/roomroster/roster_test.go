package roomroster

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
	"github.com/stretchr/testify/require"

	"github.com/Vijay-lanka/hostel-management/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Roster(ctx context.Context) ([]models.RoomRoster, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.RoomRoster), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRosterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Roster", mock.Anything).Return([]models.RoomRoster{{
			Room: models.Room{ID: 1, RoomNumber: "101", Capacity: 2},
			Students: []models.RosterStudent{
				{ID: "s-1", Name: "Asha", PaymentStatus: models.PaymentPaid, AmountPaid: 10000},
				{ID: "s-2", Name: "Student", PaymentStatus: models.PaymentPending, AmountPaid: 0},
			},
		}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rooms/students", nil)
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Status string `json:"status"`
			Data   struct {
				Rooms []models.RoomRoster `json:"rooms"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got.Data.Rooms, 1)
		assert.Equal(t, "101", got.Data.Rooms[0].Room.RoomNumber)
		assert.Equal(t, int64(10000), got.Data.Rooms[0].Students[0].AmountPaid)
		assert.Equal(t, models.PaymentPending, got.Data.Rooms[0].Students[1].PaymentStatus)
	})

	t.Run("error", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Roster", mock.Anything).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rooms/students", nil)
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"status":"Error","error":"could not load rooms"}`, w.Body.String())
	})
}
