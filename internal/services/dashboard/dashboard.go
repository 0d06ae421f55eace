// Package services содержит агрегаты панели администратора.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Vijay-lanka/hostel-management/internal/cache"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// StatsRepository считает агрегаты в хранилище.
type StatsRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Generation возвращает поколение ключа, которое растёт при каждой инвалидации.
	Generation(ctx context.Context, key string) (int64, error)
	// SetIfGeneration сохраняет значение, если поколение ключа не изменилось.
	SetIfGeneration(ctx context.Context, key string, value any, expiration time.Duration, gen int64) (bool, error)
}

// DashboardService отдаёт агрегаты, кешируя их на короткое время.
type DashboardService struct {
	repo  StatsRepository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(repo StatsRepository, cache Cache, ttl time.Duration, log *slog.Logger) *DashboardService {
	return &DashboardService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// Stats возвращает число студентов, комнат и открытых жалоб, собранные и ожидаемые суммы.
// Ошибки Redis не мешают ответу: агрегаты читаются из базы.
// Если во время пересчёта ключ инвалидировали, результат в кеш не попадает.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	found, err := s.cache.Get(ctx, cache.DashboardStatsKey, &stats)
	if err != nil {
		s.log.Warn("failed to read dashboard stats from cache", sl.Err(err))
	}
	if found {
		s.log.Debug("dashboard stats from cache")
		return &stats, nil
	}

	gen, genErr := s.cache.Generation(ctx, cache.DashboardStatsKey)
	if genErr != nil {
		s.log.Warn("failed to read dashboard stats generation", sl.Err(genErr))
	}

	fresh, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return fresh, nil
	}

	stored, err := s.cache.SetIfGeneration(ctx, cache.DashboardStatsKey, fresh, s.ttl, gen)
	switch {
	case err != nil:
		s.log.Warn("failed to cache dashboard stats", sl.Err(err))
	case !stored:
		s.log.Debug("dashboard stats changed during recompute, not cached")
	}
	return fresh, nil
}
