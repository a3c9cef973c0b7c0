// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/internal/config"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/debounce"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitGate creates the trigger debouncer selected by DEBOUNCE_MODE.
//
// The in-memory debouncer is per instance and its sweeper runs until ctx is done.
// The Redis gate shares cooldowns across instances.
func InitGate(ctx context.Context, mode string, cooldown time.Duration, redisClient *redis.Client) debounce.Gate {
	if mode == config.DebounceModeRedis {
		logrus.Infof("using Redis debounce gate (cooldown %s)", cooldown)
		return debounce.NewRedisGate(redisClient, cooldown)
	}

	d := debounce.NewDebouncer(cooldown)
	go d.RunSweeper(ctx, 0)
	logrus.Infof("using in-memory debouncer (cooldown %s)", cooldown)
	return d
}
