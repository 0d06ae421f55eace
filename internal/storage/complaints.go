package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// CreateComplaint сохраняет жалобу со статусом Open.
func (s *Storage) CreateComplaint(ctx context.Context, c models.Complaint) (*models.Complaint, error) {
	const op = "storage.CreateComplaint"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	created := c
	created.Status = models.ComplaintOpen
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO complaints (student_id, title, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		c.StudentID, c.Title, c.Description, created.Status).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListComplaintsByStudent возвращает жалобы студента, новые первыми.
func (s *Storage) ListComplaintsByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	const op = "storage.ListComplaintsByStudent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, student_id, ''::text, title, description, status, created_at
		FROM complaints
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanComplaints(op, rows)
}

// ListComplaintsWithStudent возвращает все жалобы с именем автора, новые первыми.
func (s *Storage) ListComplaintsWithStudent(ctx context.Context) ([]models.Complaint, error) {
	const op = "storage.ListComplaintsWithStudent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT c.id, c.student_id, COALESCE(p.name, ''), c.title, c.description, c.status, c.created_at
		FROM complaints c
		LEFT JOIN profiles p ON p.id = c.student_id
		ORDER BY c.created_at DESC, c.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanComplaints(op, rows)
}

// UpdateComplaintStatus выставляет статус жалобы и возвращает обновлённую запись.
func (s *Storage) UpdateComplaintStatus(ctx context.Context, id int64, status string) (*models.Complaint, error) {
	const op = "storage.UpdateComplaintStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var c models.Complaint
	err := s.DB.QueryRowContext(ctx, `
		UPDATE complaints SET status = $1 WHERE id = $2
		RETURNING id, student_id, title, description, status, created_at`, status, id).
		Scan(&c.ID, &c.StudentID, &c.Title, &c.Description, &c.Status, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func scanComplaints(op string, rows *sql.Rows) ([]models.Complaint, error) {
	defer func() {
		_ = rows.Close()
	}()

	complaints := make([]models.Complaint, 0)
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.StudentID, &c.StudentName, &c.Title, &c.Description, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return complaints, nil
}
