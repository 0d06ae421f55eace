package models

import "time"

// Статусы жалобы. Администратор может выставить любой из них в любой момент.
const (
	ComplaintOpen       = "Open"
	ComplaintInProgress = "In Progress"
	ComplaintResolved   = "Resolved"
)

// ComplaintStatuses допустимые значения статуса жалобы.
var ComplaintStatuses = []string{ComplaintOpen, ComplaintInProgress, ComplaintResolved}

// Complaint жалоба студента.
type Complaint struct {
	ID          int64     `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"` // заполняется в списке администратора
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyComplaint используется для приёма новой жалобы.
type DummyComplaint struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// DummyComplaintStatus используется для приёма нового статуса жалобы.
type DummyComplaintStatus struct {
	Status string `json:"status" validate:"required"`
}
