package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// CreateRoom добавляет комнату. Повтор номера комнаты возвращает ErrAlreadyExists.
func (s *Storage) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	const op = "storage.CreateRoom"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	created := room
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO rooms (room_number, capacity) VALUES ($1, $2) RETURNING id, created_at`,
		room.RoomNumber, room.Capacity).Scan(&created.ID, &created.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListRooms возвращает комнаты, новые первыми.
func (s *Storage) ListRooms(ctx context.Context) ([]models.Room, error) {
	const op = "storage.ListRooms"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, room_number, capacity, created_at FROM rooms ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	rooms := make([]models.Room, 0)
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.RoomNumber, &r.Capacity, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rooms, nil
}

// ListAllocations возвращает заселения комнаты в порядке создания.
func (s *Storage) ListAllocations(ctx context.Context, roomID int64) ([]models.RoomAllocation, error) {
	const op = "storage.ListAllocations"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, room_id, student_id, created_at
		FROM room_allocations
		WHERE room_id = $1
		ORDER BY created_at, id`, roomID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	allocations := make([]models.RoomAllocation, 0)
	for rows.Next() {
		var a models.RoomAllocation
		if err := rows.Scan(&a.ID, &a.RoomID, &a.StudentID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return allocations, nil
}

// CreateAllocation заселяет студента в комнату и проставляет номер комнаты в его профиль.
//
// Строка комнаты блокируется на время транзакции, поэтому параллельные заселения
// не превысят вместимость. Повторное заселение студента возвращает ErrAlreadyExists.
func (s *Storage) CreateAllocation(ctx context.Context, roomID int64, studentID string) (*models.RoomAllocation, error) {
	const op = "storage.CreateAllocation"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	alloc := models.RoomAllocation{RoomID: roomID, StudentID: studentID}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var capacity int
		var roomNumber string
		err := tx.QueryRowContext(ctx,
			`SELECT capacity, room_number FROM rooms WHERE id = $1 FOR UPDATE`, roomID).
			Scan(&capacity, &roomNumber)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var occupied int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM room_allocations WHERE room_id = $1`, roomID).Scan(&occupied); err != nil {
			return err
		}
		if occupied >= capacity {
			return ErrRoomFull
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO room_allocations (room_id, student_id) VALUES ($1, $2)
			RETURNING id, created_at`, roomID, studentID).Scan(&alloc.ID, &alloc.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `UPDATE profiles SET room_number = $1 WHERE id = $2`, roomNumber, studentID)
		return err
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &alloc, nil
}
