// Package models содержит доменные структуры хостела: пользователей и профили,
// комнаты и заселения, жалобы и оплаты, а также структуры для приёма JSON-запросов.
package models

import "time"

// Роли пользователей.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User учётная запись для входа в систему.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile связывает учётную запись с ролью и отображаемыми данными.
type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	RoomNumber *string   `json:"room_number"` // только у студентов
	CreatedAt  time.Time `json:"created_at"`
}

// CurrentUser профиль вошедшего пользователя вместе с почтой.
type CurrentUser struct {
	Profile
	Email string `json:"email"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=student admin"`
	RoomNumber string `json:"room_number,omitempty"`
}

// DummyAdmin используется администратором для создания другого администратора.
type DummyAdmin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// DummyLogin используется для приёма данных входа.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session результат успешного входа.
type Session struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}
