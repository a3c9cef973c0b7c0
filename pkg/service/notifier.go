package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// DefaultNotificationChannel is the Redis channel the UI gateway subscribes to.
const DefaultNotificationChannel = "achievement:notifications"

// Notification is the message published for one unlock batch.
// Multiple tells the UI to show the combined toast instead of a single one.
type Notification struct {
	UserID       string                   `json:"userId"`
	Achievements []achievement.Definition `json:"achievements"`
	Multiple     bool                     `json:"multiple"`
}

// NewNotification builds the message for a batch.
func NewNotification(userID string, achievements []achievement.Definition) Notification {
	return Notification{
		UserID:       userID,
		Achievements: achievements,
		Multiple:     len(achievements) > 1,
	}
}

// RedisNotificationEmitter publishes unlock batches on a Redis channel.
type RedisNotificationEmitter struct {
	client *redis.Client
	cfg    RedisNotificationEmitterConfig
}

type RedisNotificationEmitterConfig struct {
	Channel string
}

func NewRedisNotificationEmitter(client *redis.Client, cfg RedisNotificationEmitterConfig) *RedisNotificationEmitter {
	if cfg.Channel == "" {
		cfg.Channel = DefaultNotificationChannel
	}
	return &RedisNotificationEmitter{
		client: client,
		cfg:    cfg,
	}
}

// Channel returns the channel messages are published on.
func (e *RedisNotificationEmitter) Channel() string {
	return e.cfg.Channel
}

// Notify publishes one message for the whole batch.
func (e *RedisNotificationEmitter) Notify(ctx context.Context, userID string, achievements []achievement.Definition) error {
	if len(achievements) == 0 {
		return nil
	}

	data, err := json.Marshal(NewNotification(userID, achievements))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	receivers, err := e.client.Publish(ctx, e.cfg.Channel, data).Result()
	if err != nil {
		return fmt.Errorf("failed to publish notification for user %s: %w", userID, err)
	}

	logrus.Debugf("published %d achievements for user %s to %d subscribers",
		len(achievements), userID, receivers)
	return nil
}

// LogNotificationEmitter only logs batches. Used for local runs without a UI gateway.
type LogNotificationEmitter struct{}

func NewLogNotificationEmitter() *LogNotificationEmitter {
	return &LogNotificationEmitter{}
}

// Notify logs the batch.
func (e *LogNotificationEmitter) Notify(_ context.Context, userID string, achievements []achievement.Definition) error {
	ids := make([]string, 0, len(achievements))
	for _, a := range achievements {
		ids = append(ids, a.ID)
	}
	logrus.WithFields(logrus.Fields{
		"user":         userID,
		"achievements": ids,
		"multiple":     len(achievements) > 1,
	}).Info("achievements unlocked")
	return nil
}
