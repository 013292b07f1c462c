package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

var _ domain.StatsRepository = (*CachedStatsRepository)(nil)
var _ domain.LogRepository = (*CachedStatsRepository)(nil)

const (
	combinedCacheKey = "stats:combined"
	combinedCacheTTL = 30 * time.Second
)

// CachedStatsRepository is a read-through cache over the combined
// statistics view, the query every refresh cycle hits. Log inserts
// invalidate the cached snapshot. Cache failures degrade to the
// underlying repository, never to an error.
type CachedStatsRepository struct {
	stats domain.StatsRepository
	logs  domain.LogRepository
	cache *redis.Client
}

func NewCachedStatsRepository(stats domain.StatsRepository, logs domain.LogRepository, cache *redis.Client) *CachedStatsRepository {
	return &CachedStatsRepository{
		stats: stats,
		logs:  logs,
		cache: cache,
	}
}

func (r *CachedStatsRepository) Combined(ctx context.Context) (domain.CombinedStatistics, error) {
	val, err := r.cache.Get(ctx, combinedCacheKey).Result()
	if err == nil {
		var combined domain.CombinedStatistics
		if err := json.Unmarshal([]byte(val), &combined); err == nil {
			return combined, nil
		}

		log.Printf("[CACHE] Corrupted combined statistics, cleaning up key")
		r.cache.Del(ctx, combinedCacheKey)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	combined, err := r.stats.Combined(ctx)
	if err != nil {
		return domain.CombinedStatistics{}, err
	}

	if data, err := json.Marshal(combined); err == nil {
		if setErr := r.cache.Set(ctx, combinedCacheKey, data, combinedCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return combined, nil
}

func (r *CachedStatsRepository) HabitStats(ctx context.Context, names []string) ([]domain.HabitStatistics, error) {
	return r.stats.HabitStats(ctx, names)
}

func (r *CachedStatsRepository) UserStats(ctx context.Context, ids []string) ([]domain.UserStatistics, error) {
	return r.stats.UserStats(ctx, ids)
}

func (r *CachedStatsRepository) LeadingStats(ctx context.Context, userID string) (domain.UserStatistics, error) {
	return r.stats.LeadingStats(ctx, userID)
}

// Insert writes through and drops the cached snapshot so the next
// refresh sees the new event.
func (r *CachedStatsRepository) Insert(ctx context.Context, logged domain.LoggedHabit) error {
	if err := r.logs.Insert(ctx, logged); err != nil {
		return err
	}

	if err := r.cache.Del(ctx, combinedCacheKey).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate combined statistics: %v", err)
	}
	return nil
}
