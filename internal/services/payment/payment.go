// Package services содержит расчёт остатка и оплату проживания студентом.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Vijay-lanka/hostel-management/internal/cache"
	"github.com/Vijay-lanka/hostel-management/internal/events"
	"github.com/Vijay-lanka/hostel-management/internal/lib/rabbitmq"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// ErrNothingToPay возвращается, если остаток уже равен нулю.
var ErrNothingToPay = errors.New("nothing to pay")

// PaymentRepository определяет методы для работы с оплатами в хранилище.
type PaymentRepository interface {
	ListPaymentsByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
	ListPaymentsWithStudent(ctx context.Context) ([]models.PaymentWithStudent, error)
	SettlePayment(ctx context.Context, studentID string, amount int64) (*models.Payment, error)
}

// Invalidator сбрасывает закешированные агрегаты.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// PaymentService реализует оплату проживания.
type PaymentService struct {
	repo      PaymentRepository
	cache     Invalidator
	publisher events.Publisher
	totalFee  int64
	log       *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService. totalFee полная сумма к оплате.
func NewPaymentService(repo PaymentRepository, cache Invalidator, publisher events.Publisher, totalFee int64, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		totalFee:  totalFee,
		log:       log,
	}
}

// Summary считает оплаченную сумму и остаток студента.
// Учитываются только записи со статусом Paid, остаток не бывает отрицательным.
func (s *PaymentService) Summary(ctx context.Context, studentID string) (*models.PaymentSummary, error) {
	history, err := s.repo.ListPaymentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var paid int64
	for _, p := range history {
		if p.IsPaid() {
			paid += p.Amount
		}
	}

	return &models.PaymentSummary{
		TotalFee: s.totalFee,
		Paid:     paid,
		Balance:  max(s.totalFee-paid, 0),
		History:  history,
	}, nil
}

// PayNow закрывает остаток: запись студента становится Paid на полную сумму.
// Повторный вызов после оплаты возвращает ErrNothingToPay.
func (s *PaymentService) PayNow(ctx context.Context, studentID string) (*models.PaymentSummary, error) {
	summary, err := s.Summary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if summary.Balance <= 0 {
		return nil, ErrNothingToPay
	}

	payment, err := s.repo.SettlePayment(ctx, studentID, s.totalFee)
	if err != nil {
		return nil, err
	}
	s.log.Info("payment settled", slog.String("student_id", studentID), slog.Int64("amount", payment.Amount))

	if err := s.cache.Invalidate(ctx, cache.DashboardStatsKey); err != nil {
		s.log.Warn("failed to invalidate dashboard stats", sl.Err(err))
	}
	if err := s.publisher.Publish(rabbitmq.KeyPaymentStatusChanged, events.PaymentStatusChanged{
		StudentID:   payment.StudentID,
		Amount:      payment.Amount,
		Status:      payment.Status,
		PaymentDate: payment.PaymentDate,
		Source:      events.SourceStudentPay,
	}); err != nil {
		s.log.Error("failed to publish event", slog.String("routing_key", rabbitmq.KeyPaymentStatusChanged), sl.Err(err))
	}

	return s.Summary(ctx, studentID)
}

// ListAll возвращает все оплаты с именами студентов и номерами комнат.
func (s *PaymentService) ListAll(ctx context.Context) ([]models.PaymentWithStudent, error) {
	return s.repo.ListPaymentsWithStudent(ctx)
}
