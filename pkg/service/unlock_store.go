package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// unlockStoreKeyPrefix is the prefix of the per-user unlock hashes
const unlockStoreKeyPrefix = "achievement:unlocked:"

// RedisUnlockStore implements UnlockStore with one hash per user.
// Field = achievement ID, value = grant time (RFC3339Nano). HSETNX is the conditional insert.
type RedisUnlockStore struct {
	client *redis.Client
	cfg    RedisUnlockStoreConfig
}

type RedisUnlockStoreConfig struct {
	// Now overrides the clock used for grant timestamps.
	Now func() time.Time
}

// NewRedisUnlockStore creates a new Redis-backed unlock store.
func NewRedisUnlockStore(
	client *redis.Client,
	cfg RedisUnlockStoreConfig,
) *RedisUnlockStore {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &RedisUnlockStore{
		client: client,
		cfg:    cfg,
	}
}

// makeUnlockStoreKey creates a Redis key for a player
func makeUnlockStoreKey(userID string) string {
	return fmt.Sprintf("%s%s", unlockStoreKeyPrefix, userID)
}

// GetUnlocked retrieves the unlocked set for a player from Redis
func (r *RedisUnlockStore) GetUnlocked(ctx context.Context, userID string) (achievement.UnlockedSet, error) {
	key := makeUnlockStoreKey(userID)

	ids, err := r.client.HKeys(ctx, key).Result()
	if err != nil {
		logrus.Errorf("failed to get unlocked achievements for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get unlocked achievements: %w", err)
	}

	logrus.Debugf("retrieved %d unlocked achievements for user %s", len(ids), userID)
	return achievement.NewUnlockedSet(ids...), nil
}

// Grant records the achievement for the player if it is not recorded yet
func (r *RedisUnlockStore) Grant(ctx context.Context, userID, achievementID string) (bool, error) {
	key := makeUnlockStoreKey(userID)
	grantedAt := r.cfg.Now().UTC().Format(time.RFC3339Nano)

	inserted, err := r.client.HSetNX(ctx, key, achievementID, grantedAt).Result()
	if err != nil {
		logrus.Errorf("failed to grant achievement %s to user %s: %v", achievementID, userID, err)
		return false, fmt.Errorf("failed to grant achievement %s: %w", achievementID, err)
	}

	if inserted {
		logrus.Infof("granted achievement %s to user %s", achievementID, userID)
	} else {
		logrus.Debugf("achievement %s already granted to user %s", achievementID, userID)
	}
	return inserted, nil
}

// Records lists the player's grants ordered by grant time, then achievement ID
func (r *RedisUnlockStore) Records(ctx context.Context, userID string) ([]achievement.UnlockRecord, error) {
	key := makeUnlockStoreKey(userID)

	data, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get unlock records: %w", err)
	}

	records := make([]achievement.UnlockRecord, 0, len(data))
	for id, value := range data {
		grantedAt, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			logrus.Warnf("invalid grant time %q for user %s achievement %s", value, userID, id)
		}
		records = append(records, achievement.UnlockRecord{
			UserID:        userID,
			AchievementID: id,
			GrantedAt:     grantedAt,
		})
	}

	sortRecords(records)
	return records, nil
}

func sortRecords(records []achievement.UnlockRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].GrantedAt.Equal(records[j].GrantedAt) {
			return records[i].GrantedAt.Before(records[j].GrantedAt)
		}
		return records[i].AchievementID < records[j].AchievementID
	})
}
