package models

import "time"

// Статусы оплаты. Всё, что не Paid, считается неоплаченным.
const (
	PaymentPaid    = "Paid"
	PaymentPending = "Pending"
)

// Payment запись об оплате проживания. У студента не больше одной такой записи.
type Payment struct {
	ID          int64     `json:"id"`
	StudentID   string    `json:"student_id"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsPaid сообщает, оплачена ли запись.
func (p Payment) IsPaid() bool {
	return p.Status == PaymentPaid
}

// PaymentWithStudent оплата с данными студента для списка администратора.
type PaymentWithStudent struct {
	Payment
	StudentName string  `json:"student_name"`
	RoomNumber  *string `json:"room_number"`
}

// PaymentSummary сводка по оплате для студента.
type PaymentSummary struct {
	TotalFee int64     `json:"total_fee"`
	Paid     int64     `json:"paid"`
	Balance  int64     `json:"balance"`
	History  []Payment `json:"history"`
}

// DashboardStats агрегаты для панели администратора.
type DashboardStats struct {
	TotalStudents  int   `json:"total_students"`
	TotalRooms     int   `json:"total_rooms"`
	OpenComplaints int   `json:"open_complaints"`
	TotalCollected int64 `json:"total_collected"`
	TotalPending   int64 `json:"total_pending"`
}
