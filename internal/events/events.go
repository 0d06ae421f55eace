// Package events описывает сообщения, которые API публикует в RabbitMQ после успешных изменений.
package events

import "time"

// Publisher отправляет событие с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// ComplaintCreated студент оставил жалобу.
type ComplaintCreated struct {
	ComplaintID int64     `json:"complaint_id"`
	StudentID   string    `json:"student_id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
}

// ComplaintStatusChanged администратор изменил статус жалобы.
type ComplaintStatusChanged struct {
	ComplaintID int64  `json:"complaint_id"`
	StudentID   string `json:"student_id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
}

// Источники изменения оплаты.
const (
	SourceAdminToggle = "admin_toggle"
	SourceStudentPay  = "student_pay"
)

// PaymentStatusChanged изменилась запись об оплате студента.
type PaymentStatusChanged struct {
	StudentID   string    `json:"student_id"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	PaymentDate time.Time `json:"payment_date"`
	Source      string    `json:"source"`
}

// PaymentReminder у студента есть неоплаченная запись. Публикуется планировщиком.
type PaymentReminder struct {
	StudentID string `json:"student_id"`
	Amount    int64  `json:"amount"`
}
