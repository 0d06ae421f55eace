package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// CreateUserWithProfile создаёт учётную запись и профиль в одной транзакции и возвращает id пользователя.
func (s *Storage) CreateUserWithProfile(ctx context.Context, user models.User, profile models.Profile) (string, error) {
	const op = "storage.CreateUserWithProfile"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var id string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
			user.Email, user.PasswordHash).Scan(&id)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO profiles (id, name, role, room_number) VALUES ($1, $2, $3, $4)`,
			id, profile.Name, profile.Role, profile.RoomNumber)
		return err
	})
	if isUniqueViolation(err) {
		return "", fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetUserByEmail возвращает учётную запись по почте.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var u models.User
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// GetProfile возвращает профиль по id пользователя.
func (s *Storage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var p models.Profile
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, role, room_number, created_at FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Role, &p.RoomNumber, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetCurrentUser возвращает профиль вместе с почтой учётной записи.
func (s *Storage) GetCurrentUser(ctx context.Context, id string) (*models.CurrentUser, error) {
	const op = "storage.GetCurrentUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var cu models.CurrentUser
	err := s.DB.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.role, p.room_number, p.created_at, u.email
		FROM profiles p
		JOIN users u ON u.id = p.id
		WHERE p.id = $1`, id).
		Scan(&cu.ID, &cu.Name, &cu.Role, &cu.RoomNumber, &cu.CreatedAt, &cu.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cu, nil
}
