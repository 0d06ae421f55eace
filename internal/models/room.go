package models

import "time"

// Room комната хостела.
type Room struct {
	ID         int64     `json:"id"`
	RoomNumber string    `json:"room_number"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoomAllocation заселение студента в комнату.
type RoomAllocation struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	StudentID string    `json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RosterStudent студент комнаты вместе с состоянием его оплаты.
type RosterStudent struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PaymentStatus string `json:"payment_status"`
	AmountPaid    int64  `json:"amount_paid"`
}

// RoomRoster комната и список заселённых в неё студентов.
type RoomRoster struct {
	Room     Room            `json:"room"`
	Students []RosterStudent `json:"students"`
}

// DummyRoom используется для приёма данных новой комнаты.
type DummyRoom struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
}

// DummyAllocation используется для приёма данных заселения.
type DummyAllocation struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
}
