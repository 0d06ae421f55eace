// Package services содержит бизнес-логику жалоб студентов.
package services

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/Vijay-lanka/hostel-management/internal/cache"
	"github.com/Vijay-lanka/hostel-management/internal/events"
	"github.com/Vijay-lanka/hostel-management/internal/lib/rabbitmq"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	"github.com/Vijay-lanka/hostel-management/internal/storage"
)

var (
	ErrEmptyFields   = errors.New("title and description are required")
	ErrInvalidStatus = errors.New("invalid complaint status")
	ErrNotFound      = errors.New("complaint not found")
)

// ComplaintRepository определяет методы для работы с жалобами в хранилище.
type ComplaintRepository interface {
	CreateComplaint(ctx context.Context, c models.Complaint) (*models.Complaint, error)
	ListComplaintsByStudent(ctx context.Context, studentID string) ([]models.Complaint, error)
	ListComplaintsWithStudent(ctx context.Context) ([]models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id int64, status string) (*models.Complaint, error)
}

// Invalidator сбрасывает закешированные агрегаты.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// ComplaintService реализует жизненный цикл жалобы.
type ComplaintService struct {
	repo      ComplaintRepository
	cache     Invalidator
	publisher events.Publisher
	log       *slog.Logger
}

// NewComplaintService создает новый экземпляр ComplaintService.
func NewComplaintService(repo ComplaintRepository, cache Invalidator, publisher events.Publisher, log *slog.Logger) *ComplaintService {
	return &ComplaintService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Create сохраняет жалобу студента со статусом Open.
func (s *ComplaintService) Create(ctx context.Context, studentID string, req models.DummyComplaint) (*models.Complaint, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, ErrEmptyFields
	}

	created, err := s.repo.CreateComplaint(ctx, models.Complaint{
		StudentID:   studentID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.publish(rabbitmq.KeyComplaintCreated, events.ComplaintCreated{
		ComplaintID: created.ID,
		StudentID:   created.StudentID,
		Title:       created.Title,
		CreatedAt:   created.CreatedAt,
	})
	return created, nil
}

// ListOwn возвращает жалобы студента, новые первыми.
func (s *ComplaintService) ListOwn(ctx context.Context, studentID string) ([]models.Complaint, error) {
	return s.repo.ListComplaintsByStudent(ctx, studentID)
}

// ListAll возвращает все жалобы с именами студентов, новые первыми.
func (s *ComplaintService) ListAll(ctx context.Context) ([]models.Complaint, error) {
	return s.repo.ListComplaintsWithStudent(ctx)
}

// UpdateStatus выставляет статус жалобы. Разрешён любой переход, повторный вызов ничего не меняет.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Complaint, error) {
	if !slices.Contains(models.ComplaintStatuses, status) {
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateComplaintStatus(ctx, id, status)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.publish(rabbitmq.KeyComplaintStatusChanged, events.ComplaintStatusChanged{
		ComplaintID: updated.ID,
		StudentID:   updated.StudentID,
		Title:       updated.Title,
		Status:      updated.Status,
	})
	return updated, nil
}

func (s *ComplaintService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.DashboardStatsKey); err != nil {
		s.log.Warn("failed to invalidate dashboard stats", sl.Err(err))
	}
}

func (s *ComplaintService) publish(key string, msg any) {
	if err := s.publisher.Publish(key, msg); err != nil {
		s.log.Error("failed to publish event", slog.String("routing_key", key), sl.Err(err))
	}
}
