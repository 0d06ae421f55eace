package roomlist

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

func (m *MockService) ListRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		rooms      []models.Room
		err        error
		wantStatus int
		wantBody   string
		wantRooms  []string
	}{
		{
			name: "rooms in order",
			rooms: []models.Room{
				{ID: 1, RoomNumber: "101", Capacity: 2},
				{ID: 2, RoomNumber: "102", Capacity: 3},
			},
			wantStatus: http.StatusOK,
			wantRooms:  []string{"101", "102"},
		},
		{
			name:       "no rooms yet",
			rooms:      []models.Room{},
			wantStatus: http.StatusOK,
			wantRooms:  []string{},
		},
		{
			name:       "storage error",
			err:        errors.New("db error"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":"Error","error":"could not list rooms"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.err != nil {
				svc.On("ListRooms", mock.Anything).Return(nil, tt.err).Once()
			} else {
				svc.On("ListRooms", mock.Anything).Return(tt.rooms, nil).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rooms", nil)
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				var got struct {
					Status string `json:"status"`
					Data   struct {
						Rooms []models.Room `json:"rooms"`
					} `json:"data"`
				}
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				numbers := make([]string, 0, len(got.Data.Rooms))
				for _, r := range got.Data.Rooms {
					numbers = append(numbers, r.RoomNumber)
				}
				assert.Equal(t, tt.wantRooms, numbers)
			}
			svc.AssertExpectations(t)
		})
	}
}
