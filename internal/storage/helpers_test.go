package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Vijay-lanka/hostel-management/internal/migrations"
	"github.com/Vijay-lanka/hostel-management/internal/models"
)

var (
	containerOnce sync.Once
	sharedDSN     string
	containerErr  error
	terminate     func()
)

func TestMain(m *testing.M) {
	code := m.Run()
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// setupTestDatabase поднимает один контейнер PostgreSQL на пакет, накатывает миграции
// и очищает таблицы перед каждым тестом.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	containerOnce.Do(func() {
		ctx := context.Background()
		pgContainer, err := postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("hostel"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(time.Minute),
			),
		)
		if err != nil {
			containerErr = err
			return
		}
		terminate = func() { _ = pgContainer.Terminate(ctx) }
		sharedDSN, containerErr = pgContainer.ConnectionString(ctx, "sslmode=disable")
	})
	require.NoError(t, containerErr, "failed to start postgres container")

	storage, err := New(sharedDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	_, err = storage.DB.Exec(`TRUNCATE payments, complaints, room_allocations, rooms, profiles, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return storage
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	t       *testing.T
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(t *testing.T, storage *Storage) *TestDataFactory {
	return &TestDataFactory{t: t, storage: storage}
}

// CreateStudent создаёт учётную запись студента и возвращает её id.
func (f *TestDataFactory) CreateStudent(email, name string) string {
	return f.createUser(email, name, models.RoleStudent)
}

// CreateAdmin создаёт учётную запись администратора и возвращает её id.
func (f *TestDataFactory) CreateAdmin(email, name string) string {
	return f.createUser(email, name, models.RoleAdmin)
}

func (f *TestDataFactory) createUser(email, name, role string) string {
	id, err := f.storage.CreateUserWithProfile(context.Background(),
		models.User{Email: email, PasswordHash: "hash"},
		models.Profile{Name: name, Role: role})
	require.NoError(f.t, err)
	return id
}

// CreateRoom создаёт комнату.
func (f *TestDataFactory) CreateRoom(number string, capacity int) models.Room {
	room, err := f.storage.CreateRoom(context.Background(), models.Room{RoomNumber: number, Capacity: capacity})
	require.NoError(f.t, err)
	return *room
}

// InsertPayment вставляет запись об оплате напрямую.
func (f *TestDataFactory) InsertPayment(studentID string, amount int64, status string) {
	_, err := f.storage.DB.Exec(`INSERT INTO payments (student_id, amount, status) VALUES ($1, $2, $3)`,
		studentID, amount, status)
	require.NoError(f.t, err)
}

// CountPayments возвращает число записей об оплате студента.
func (f *TestDataFactory) CountPayments(studentID string) int {
	var count int
	err := f.storage.DB.QueryRow(`SELECT COUNT(*) FROM payments WHERE student_id = $1`, studentID).Scan(&count)
	require.NoError(f.t, err)
	return count
}
