package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// У студента одна запись об оплате (уникальный student_id), все записи идут через upsert,
// поэтому параллельные запросы не создают дублей.

const paymentColumns = `id, student_id, amount, status, payment_date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner, p *models.Payment) error {
	return row.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Status, &p.PaymentDate, &p.CreatedAt)
}

// EnsurePayment создаёт запись Pending на amount, если у студента её ещё нет.
// Возвращает запись и признак того, что она была создана этим вызовом.
func (s *Storage) EnsurePayment(ctx context.Context, studentID string, amount int64) (*models.Payment, bool, error) {
	const op = "storage.EnsurePayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, false, err
	}

	var p models.Payment
	err := scanPayment(s.DB.QueryRowContext(ctx, `
		INSERT INTO payments (student_id, amount, status)
		VALUES ($1, $2, 'Pending')
		ON CONFLICT (student_id) DO NOTHING
		RETURNING `+paymentColumns, studentID, amount), &p)
	if err == nil {
		return &p, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.GetPaymentByStudent(ctx, studentID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return existing, false, nil
}

// GetPaymentByStudent возвращает запись об оплате студента.
func (s *Storage) GetPaymentByStudent(ctx context.Context, studentID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByStudent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var p models.Payment
	err := scanPayment(s.DB.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE student_id = $1`, studentID), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// TogglePayment переключает статус Paid <-> Pending одним запросом.
// Если записи нет, создаёт её сразу со статусом Paid на amount.
func (s *Storage) TogglePayment(ctx context.Context, studentID string, amount int64) (*models.Payment, error) {
	const op = "storage.TogglePayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var p models.Payment
	err := scanPayment(s.DB.QueryRowContext(ctx, `
		INSERT INTO payments (student_id, amount, status, payment_date)
		VALUES ($1, $2, 'Paid', NOW())
		ON CONFLICT (student_id) DO UPDATE SET
			status = CASE WHEN payments.status = 'Paid' THEN 'Pending' ELSE 'Paid' END,
			payment_date = CASE WHEN payments.status = 'Paid' THEN payments.payment_date ELSE NOW() END
		RETURNING `+paymentColumns, studentID, amount), &p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// SettlePayment отмечает оплату студента как Paid на amount, создавая запись при необходимости.
func (s *Storage) SettlePayment(ctx context.Context, studentID string, amount int64) (*models.Payment, error) {
	const op = "storage.SettlePayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var p models.Payment
	err := scanPayment(s.DB.QueryRowContext(ctx, `
		INSERT INTO payments (student_id, amount, status, payment_date)
		VALUES ($1, $2, 'Paid', NOW())
		ON CONFLICT (student_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			status = 'Paid',
			payment_date = NOW()
		RETURNING `+paymentColumns, studentID, amount), &p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// ListPaymentsByStudent возвращает историю оплат студента по убыванию даты.
func (s *Storage) ListPaymentsByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	const op = "storage.ListPaymentsByStudent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE student_id = $1 ORDER BY payment_date DESC, id DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// ListUnpaidPayments возвращает записи об оплате, которые не в статусе Paid.
func (s *Storage) ListUnpaidPayments(ctx context.Context) ([]models.Payment, error) {
	const op = "storage.ListUnpaidPayments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE status <> $1 ORDER BY id`, models.PaymentPaid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// ListPaymentsWithStudent возвращает все оплаты с именем и комнатой студента.
func (s *Storage) ListPaymentsWithStudent(ctx context.Context) ([]models.PaymentWithStudent, error) {
	const op = "storage.ListPaymentsWithStudent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT pay.id, pay.student_id, pay.amount, pay.status, pay.payment_date, pay.created_at,
		       COALESCE(p.name, ''), p.room_number
		FROM payments pay
		LEFT JOIN profiles p ON p.id = pay.student_id
		ORDER BY pay.payment_date DESC, pay.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	payments := make([]models.PaymentWithStudent, 0)
	for rows.Next() {
		var p models.PaymentWithStudent
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Status, &p.PaymentDate, &p.CreatedAt,
			&p.StudentName, &p.RoomNumber); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}
