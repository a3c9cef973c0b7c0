// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package debounce

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisKeyPrefix is the prefix of the per-user debounce keys.
const RedisKeyPrefix = "achievement:debounce:"

// RedisGate shares the cooldown between service instances.
// SET NX with an expiry is the atomic check-and-update.
type RedisGate struct {
	client   *redis.Client
	cooldown time.Duration
}

// NewRedisGate creates a Redis-backed gate. A non-positive cooldown uses DefaultCooldown.
func NewRedisGate(client *redis.Client, cooldown time.Duration) *RedisGate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &RedisGate{
		client:   client,
		cooldown: cooldown,
	}
}

func makeKey(userID string) string {
	return fmt.Sprintf("%s%s", RedisKeyPrefix, userID)
}

// ShouldEvaluate sets the user's key only if absent.
// If Redis is unavailable the trigger is let through.
func (g *RedisGate) ShouldEvaluate(ctx context.Context, userID string, now time.Time) bool {
	ok, err := g.client.SetNX(ctx, makeKey(userID), now.UnixMilli(), g.cooldown).Result()
	if err != nil {
		logrus.Warnf("debounce check for user %s failed, evaluating anyway: %v", userID, err)
		return true
	}

	if !ok {
		logrus.Debugf("evaluation for user %s suppressed by shared cooldown", userID)
	}
	return ok
}
