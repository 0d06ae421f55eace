// Package services содержит управление комнатами и сверку оплат по заселённым студентам.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Vijay-lanka/hostel-management/internal/cache"
	"github.com/Vijay-lanka/hostel-management/internal/events"
	"github.com/Vijay-lanka/hostel-management/internal/lib/rabbitmq"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	"github.com/Vijay-lanka/hostel-management/internal/storage"
)

// DefaultStudentName подставляется, если у заселённого студента нет профиля или имени.
const DefaultStudentName = "Student"

var (
	ErrInvalidRoom      = errors.New("room number is required and capacity must be positive")
	ErrRoomExists       = errors.New("room already exists")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrStudentNotFound  = errors.New("student not found")
	ErrNotStudent       = errors.New("profile is not a student")
	ErrAlreadyAllocated = errors.New("student already has a room")
)

// RoomRepository определяет методы для работы с комнатами, заселениями и оплатами.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room models.Room) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListAllocations(ctx context.Context, roomID int64) ([]models.RoomAllocation, error)
	CreateAllocation(ctx context.Context, roomID int64, studentID string) (*models.RoomAllocation, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	EnsurePayment(ctx context.Context, studentID string, amount int64) (*models.Payment, bool, error)
	TogglePayment(ctx context.Context, studentID string, amount int64) (*models.Payment, error)
}

// Invalidator сбрасывает закешированные агрегаты.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// RoomService реализует операции администратора над комнатами.
type RoomService struct {
	repo      RoomRepository
	cache     Invalidator
	publisher events.Publisher
	roomFee   int64
	log       *slog.Logger
}

// NewRoomService создает новый экземпляр RoomService. roomFee сумма, с которой создаётся запись об оплате.
func NewRoomService(repo RoomRepository, cache Invalidator, publisher events.Publisher, roomFee int64, log *slog.Logger) *RoomService {
	return &RoomService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		roomFee:   roomFee,
		log:       log,
	}
}

// CreateRoom добавляет комнату.
func (s *RoomService) CreateRoom(ctx context.Context, req models.DummyRoom) (*models.Room, error) {
	number := strings.TrimSpace(req.RoomNumber)
	if number == "" || req.Capacity <= 0 {
		return nil, ErrInvalidRoom
	}

	room, err := s.repo.CreateRoom(ctx, models.Room{RoomNumber: number, Capacity: req.Capacity})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil, ErrRoomExists
	}
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return room, nil
}

// ListRooms возвращает комнаты, новые первыми.
func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.repo.ListRooms(ctx)
}

// Allocate заселяет студента в комнату, если в ней есть место.
func (s *RoomService) Allocate(ctx context.Context, roomID int64, studentID string) (*models.RoomAllocation, error) {
	if err := s.checkStudent(ctx, studentID); err != nil {
		return nil, err
	}

	alloc, err := s.repo.CreateAllocation(ctx, roomID, studentID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrRoomNotFound
	case errors.Is(err, storage.ErrRoomFull):
		return nil, ErrRoomFull
	case errors.Is(err, storage.ErrAlreadyExists):
		return nil, ErrAlreadyAllocated
	case err != nil:
		return nil, err
	}

	s.log.Info("student allocated", slog.Int64("room_id", roomID), slog.String("student_id", studentID))
	return alloc, nil
}

// Roster собирает по каждой комнате список студентов и состояние их оплаты.
// Для студентов без записи об оплате она создаётся со статусом Pending.
func (s *RoomService) Roster(ctx context.Context) ([]models.RoomRoster, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.RoomRoster, 0, len(rooms))
	created := false
	for _, room := range rooms {
		allocations, err := s.repo.ListAllocations(ctx, room.ID)
		if err != nil {
			return nil, err
		}

		students := make([]models.RosterStudent, 0, len(allocations))
		for _, alloc := range allocations {
			name, err := s.studentName(ctx, alloc.StudentID)
			if err != nil {
				return nil, err
			}

			payment, wasCreated, err := s.repo.EnsurePayment(ctx, alloc.StudentID, s.roomFee)
			if err != nil {
				return nil, err
			}
			created = created || wasCreated

			var amountPaid int64
			if payment.IsPaid() {
				amountPaid = payment.Amount
			}
			students = append(students, models.RosterStudent{
				ID:            alloc.StudentID,
				Name:          name,
				PaymentStatus: payment.Status,
				AmountPaid:    amountPaid,
			})
		}
		result = append(result, models.RoomRoster{Room: room, Students: students})
	}

	if created {
		s.invalidateStats(ctx)
	}
	return result, nil
}

// TogglePayment переключает оплату студента Paid <-> Pending и возвращает обновлённый список.
func (s *RoomService) TogglePayment(ctx context.Context, studentID string) ([]models.RoomRoster, error) {
	if err := s.checkStudent(ctx, studentID); err != nil {
		return nil, err
	}

	payment, err := s.repo.TogglePayment(ctx, studentID, s.roomFee)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	if err := s.publisher.Publish(rabbitmq.KeyPaymentStatusChanged, events.PaymentStatusChanged{
		StudentID:   payment.StudentID,
		Amount:      payment.Amount,
		Status:      payment.Status,
		PaymentDate: payment.PaymentDate,
		Source:      events.SourceAdminToggle,
	}); err != nil {
		s.log.Error("failed to publish event", slog.String("routing_key", rabbitmq.KeyPaymentStatusChanged), sl.Err(err))
	}

	return s.Roster(ctx)
}

func (s *RoomService) checkStudent(ctx context.Context, studentID string) error {
	profile, err := s.repo.GetProfile(ctx, studentID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrStudentNotFound
	}
	if err != nil {
		return err
	}
	if profile.Role != models.RoleStudent {
		return ErrNotStudent
	}
	return nil
}

func (s *RoomService) studentName(ctx context.Context, studentID string) (string, error) {
	profile, err := s.repo.GetProfile(ctx, studentID)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultStudentName, nil
	}
	if err != nil {
		return "", err
	}
	if profile.Name == "" {
		return DefaultStudentName, nil
	}
	return profile.Name, nil
}

func (s *RoomService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.DashboardStatsKey); err != nil {
		s.log.Warn("failed to invalidate dashboard stats", sl.Err(err))
	}
}
