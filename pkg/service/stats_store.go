package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const statsStoreKeyPrefix = "achievement:stats:"

// RedisStatsStore keeps aggregated counters in one hash per user, keyed by requirement type.
// The aggregator writes with Increment; the engine reads with Snapshot.
type RedisStatsStore struct {
	client *redis.Client
	cfg    RedisStatsStoreConfig
}

type RedisStatsStoreConfig struct{}

func NewRedisStatsStore(client *redis.Client, cfg RedisStatsStoreConfig) *RedisStatsStore {
	return &RedisStatsStore{
		client: client,
		cfg:    cfg,
	}
}

func makeStatsStoreKey(userID string) string {
	return fmt.Sprintf("%s%s", statsStoreKeyPrefix, userID)
}

// Snapshot reads all counters for a user. A user with no stats gets an empty snapshot.
func (r *RedisStatsStore) Snapshot(ctx context.Context, userID string) (achievement.StatsSnapshot, error) {
	key := makeStatsStoreKey(userID)

	// Get all fields from hash using HGETALL
	data, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return achievement.StatsSnapshot{}, fmt.Errorf("failed to get stats: %w", err)
	}

	counters := make(map[string]int, len(data))
	for requirementType, raw := range data {
		value, err := strconv.Atoi(raw)
		if err != nil {
			// Skip invalid entries
			logrus.Warnf("ignoring non-integer stat %s=%q for user %s", requirementType, raw, userID)
			continue
		}
		counters[requirementType] = value
	}

	return achievement.StatsSnapshot{UserID: userID, Counters: counters}, nil
}

// Increment atomically adds delta to a counter and returns the new value.
func (r *RedisStatsStore) Increment(ctx context.Context, userID, requirementType string, delta int) (int, error) {
	key := makeStatsStoreKey(userID)

	// Atomic increment using HINCRBY
	value, err := r.client.HIncrBy(ctx, key, requirementType, int64(delta)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment stat %s: %w", requirementType, err)
	}

	return int(value), nil
}

// Set overwrites the given counters for a user.
func (r *RedisStatsStore) Set(ctx context.Context, userID string, counters map[string]int) error {
	if len(counters) == 0 {
		return nil
	}

	key := makeStatsStoreKey(userID)

	// Convert map to []interface{} for HSET
	fields := make([]interface{}, 0, len(counters)*2)
	for requirementType, value := range counters {
		fields = append(fields, requirementType, value)
	}

	if err := r.client.HSet(ctx, key, fields...).Err(); err != nil {
		return fmt.Errorf("failed to set stats: %w", err)
	}
	return nil
}
