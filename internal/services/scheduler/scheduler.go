// Package services содержит планировщик напоминаний о неоплаченном проживании.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Vijay-lanka/hostel-management/internal/events"
	"github.com/Vijay-lanka/hostel-management/internal/lib/rabbitmq"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// PaymentRepository находит неоплаченные записи.
type PaymentRepository interface {
	ListUnpaidPayments(ctx context.Context) ([]models.Payment, error)
}

// SchedulerService периодически публикует напоминания об оплате.
type SchedulerService struct {
	repo      PaymentRepository
	publisher events.Publisher
	interval  time.Duration
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo PaymentRepository, publisher events.Publisher, interval time.Duration, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		log:       log,
	}
}

// Run сразу рассылает напоминания, затем повторяет раз в interval до отмены ctx.
func (s *SchedulerService) Run(ctx context.Context) {
	s.SendPaymentReminders(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SendPaymentReminders(ctx)
		}
	}
}

// SendPaymentReminders публикует событие для каждой неоплаченной записи и возвращает число отправленных.
func (s *SchedulerService) SendPaymentReminders(ctx context.Context) int {
	s.log.Info("looking for unpaid payments")
	payments, err := s.repo.ListUnpaidPayments(ctx)
	if err != nil {
		s.log.Error("failed to find unpaid payments", sl.Err(err))
		return 0
	}
	if len(payments) == 0 {
		s.log.Info("no unpaid payments found")
		return 0
	}
	s.log.Info("found unpaid payments", slog.Int("count", len(payments)))

	sent := 0
	for _, p := range payments {
		err := s.publisher.Publish(rabbitmq.KeyPaymentReminder, events.PaymentReminder{
			StudentID: p.StudentID,
			Amount:    p.Amount,
		})
		if err != nil {
			s.log.Error("failed to publish reminder", slog.String("student_id", p.StudentID), sl.Err(err))
			continue
		}
		sent++
	}
	return sent
}
