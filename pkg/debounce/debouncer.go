// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultCooldown is the minimum time between two evaluation passes for the same user.
const DefaultCooldown = 2 * time.Second

// Gate decides whether a trigger should start an evaluation pass.
// Implementations never fail; they only gate.
type Gate interface {
	ShouldEvaluate(ctx context.Context, userID string, now time.Time) bool
}

// Debouncer keeps a last-evaluated timestamp per user in process memory.
// The check and the update happen under one lock, so of two concurrent triggers
// for the same user only one passes.
type Debouncer struct {
	cooldown time.Duration

	mu            sync.Mutex
	lastEvaluated map[string]time.Time
}

// NewDebouncer creates a debouncer. A non-positive cooldown uses DefaultCooldown.
func NewDebouncer(cooldown time.Duration) *Debouncer {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Debouncer{
		cooldown:      cooldown,
		lastEvaluated: make(map[string]time.Time),
	}
}

// Cooldown returns the configured cooldown.
func (d *Debouncer) Cooldown() time.Duration {
	return d.cooldown
}

// ShouldEvaluate returns true and records now when the user is outside the cooldown window.
// It returns false without side effects when suppressed.
func (d *Debouncer) ShouldEvaluate(_ context.Context, userID string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	last, ok := d.lastEvaluated[userID]
	if ok && now.Sub(last) < d.cooldown {
		logrus.Debugf("evaluation for user %s suppressed, last pass %v ago", userID, now.Sub(last))
		return false
	}

	d.lastEvaluated[userID] = now
	return true
}

// Forget drops the timestamp for a user.
func (d *Debouncer) Forget(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.lastEvaluated, userID)
}

// Sweep removes users whose cooldown has expired and returns how many were removed.
func (d *Debouncer) Sweep(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := 0
	for userID, last := range d.lastEvaluated {
		if now.Sub(last) >= d.cooldown {
			delete(d.lastEvaluated, userID)
			removed++
		}
	}

	if removed > 0 {
		logrus.Debugf("swept %d idle users from debouncer", removed)
	}
	return removed
}

// Len returns the number of users currently tracked.
func (d *Debouncer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lastEvaluated)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (d *Debouncer) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * d.cooldown
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			d.Sweep(now)
		}
	}
}
