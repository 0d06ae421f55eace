package storage

import (
	"context"
	"fmt"

	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// DashboardStats считает агрегаты панели администратора одним запросом.
func (s *Storage) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "storage.DashboardStats"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var st models.DashboardStats
	err := s.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM profiles WHERE role = 'student'),
			(SELECT COUNT(*) FROM rooms),
			(SELECT COUNT(*) FROM complaints WHERE status = 'Open'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'Paid'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status <> 'Paid')`).
		Scan(&st.TotalStudents, &st.TotalRooms, &st.OpenComplaints, &st.TotalCollected, &st.TotalPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}
