// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package debounce

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestRedisGate_ShouldEvaluate(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	gate := NewRedisGate(client, 2*time.Second)
	now := time.Now()

	if !gate.ShouldEvaluate(ctx, "user-1", now) {
		t.Fatal("Expected first trigger to pass")
	}
	if gate.ShouldEvaluate(ctx, "user-1", now.Add(time.Second)) {
		t.Error("Expected trigger within cooldown to be suppressed")
	}
	if !gate.ShouldEvaluate(ctx, "user-2", now) {
		t.Error("Expected other user to pass")
	}

	mr.FastForward(2 * time.Second)

	if !gate.ShouldEvaluate(ctx, "user-1", now.Add(2*time.Second)) {
		t.Error("Expected trigger after cooldown to pass")
	}
}

func TestRedisGate_FailsOpen(t *testing.T) {
	client, mr := setupTestRedis(t)
	gate := NewRedisGate(client, time.Minute)
	mr.Close()

	if !gate.ShouldEvaluate(context.Background(), "user-1", time.Now()) {
		t.Error("Expected gate to let triggers through when Redis is down")
	}
}
