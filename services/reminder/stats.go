package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	reminderRepo "taskly/database/repository/reminder"
	"taskly/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReminderStats maps a status to the number of a user's reminders in it.
type ReminderStats map[models.ReminderStatus]int

// StatsCache stores per-user reminder stats for a short time.
type StatsCache interface {
	Get(ctx context.Context, userID string) (ReminderStats, bool, error)
	Set(ctx context.Context, userID string, stats ReminderStats, ttl time.Duration) error
}

type RedisStatsCache struct {
	client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

const statsKeyPrefix = "reminderStats:"

func statsKey(userID string) string {
	return fmt.Sprintf("%s%s", statsKeyPrefix, userID)
}

func (c *RedisStatsCache) Get(ctx context.Context, userID string) (ReminderStats, bool, error) {
	val, err := c.client.Get(ctx, statsKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var stats ReminderStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, false, err
	}
	return stats, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, userID string, stats ReminderStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(userID), data, ttl).Err()
}

// StatsService answers per-user reminder statistics, optionally through a cache.
type StatsService struct {
	reminders reminderRepo.ReminderRepository
	cache     StatsCache
	ttl       time.Duration
	logger    *zap.Logger
}

// NewStatsService builds a StatsService. cache may be nil.
func NewStatsService(reminders reminderRepo.ReminderRepository, cache StatsCache, ttl time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{reminders: reminders, cache: cache, ttl: ttl, logger: logger}
}

func (s *StatsService) GetReminderStats(ctx context.Context, userID string) (ReminderStats, error) {
	if s.cache != nil {
		stats, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("[ReminderStats] ⚠️ Cache read failed", zap.String("userID", userID), zap.Error(err))
		} else if ok {
			return stats, nil
		}
	}

	counts, err := s.reminders.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reminders for user %s: %w", userID, err)
	}
	stats := ReminderStats(counts)

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, userID, stats, s.ttl); err != nil {
			s.logger.Warn("[ReminderStats] ⚠️ Cache write failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return stats, nil
}
