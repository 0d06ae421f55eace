// Package services содержит рассылку писем студентам по событиям хостела.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Vijay-lanka/hostel-management/internal/events"
	"github.com/Vijay-lanka/hostel-management/internal/lib/rabbitmq"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/lib/smtp"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	"github.com/Vijay-lanka/hostel-management/internal/storage"
)

// RecipientRepository находит почту и имя студента.
type RecipientRepository interface {
	GetCurrentUser(ctx context.Context, id string) (*models.CurrentUser, error)
}

// NotifierService отправляет письма по событиям из очередей.
type NotifierService struct {
	users  RecipientRepository
	dialer smtp.Dialer
	log    *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(users RecipientRepository, dialer smtp.Dialer, log *slog.Logger) *NotifierService {
	return &NotifierService{
		users:  users,
		dialer: dialer,
		log:    log,
	}
}

// letter тема и текст письма студенту без обращения и подписи.
type letter struct {
	studentID string
	subject   string
	text      string
}

// Handle разбирает событие по ключу маршрутизации и отправляет письмо студенту.
// Неизвестные ключи и события для удалённых студентов пропускаются.
func (s *NotifierService) Handle(ctx context.Context, routingKey string, body []byte) error {
	l, ok, err := s.compose(routingKey, body)
	if err != nil || !ok {
		return err
	}

	user, err := s.users.GetCurrentUser(ctx, l.studentID)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("recipient not found, message skipped", slog.String("student_id", l.studentID))
		return nil
	}
	if err != nil {
		return err
	}

	return s.deliver(smtp.Message{
		From:    s.dialer.From(),
		To:      []string{user.Email},
		Subject: l.subject,
		Body:    fmt.Sprintf("Здравствуйте, %s!\n\n%s", user.Name, l.text),
	})
}

// compose выбирает текст письма по событию. ok=false для событий без письма.
func (s *NotifierService) compose(routingKey string, body []byte) (letter, bool, error) {
	switch routingKey {
	case rabbitmq.KeyComplaintCreated:
		var e events.ComplaintCreated
		if err := s.decode(body, &e); err != nil {
			return letter{}, false, err
		}
		return letter{e.StudentID, "Жалоба принята", fmt.Sprintf(
			"Ваша жалоба «%s» зарегистрирована под номером %d и будет рассмотрена администрацией.",
			e.Title, e.ComplaintID)}, true, nil
	case rabbitmq.KeyComplaintStatusChanged:
		var e events.ComplaintStatusChanged
		if err := s.decode(body, &e); err != nil {
			return letter{}, false, err
		}
		return letter{e.StudentID, "Статус жалобы изменён", fmt.Sprintf(
			"Статус вашей жалобы «%s» изменён на «%s».", e.Title, e.Status)}, true, nil
	case rabbitmq.KeyPaymentStatusChanged:
		var e events.PaymentStatusChanged
		if err := s.decode(body, &e); err != nil {
			return letter{}, false, err
		}
		text := fmt.Sprintf("Оплата проживания на сумму %d отмечена как неоплаченная. "+
			"Пожалуйста, проверьте баланс в личном кабинете.", e.Amount)
		if e.Status == models.PaymentPaid {
			text = fmt.Sprintf("Оплата проживания на сумму %d получена %s.",
				e.Amount, e.PaymentDate.Format("02.01.2006"))
		}
		return letter{e.StudentID, "Оплата проживания", text}, true, nil
	case rabbitmq.KeyPaymentReminder:
		var e events.PaymentReminder
		if err := s.decode(body, &e); err != nil {
			return letter{}, false, err
		}
		return letter{e.StudentID, "Напоминание об оплате", fmt.Sprintf(
			"Оплата проживания на сумму %d ещё не поступила. Оплатить можно в личном кабинете.", e.Amount)}, true, nil
	default:
		s.log.Warn("unknown routing key, message skipped", slog.String("routing_key", routingKey))
		return letter{}, false, nil
	}
}

func (s *NotifierService) decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	return nil
}

func (s *NotifierService) deliver(msg smtp.Message) error {
	client, err := s.dialer.Dial()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() { _ = client.Close() }()

	if err := smtp.Send(client, msg); err != nil {
		s.log.Error("failed to send email", slog.Any("to", msg.To), sl.Err(err))
		return err
	}
	s.log.Info("email sent", slog.Any("to", msg.To), slog.String("subject", msg.Subject))
	return nil
}
