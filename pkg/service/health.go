// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// DefaultHealthCheckTimeout bounds each probe.
const DefaultHealthCheckTimeout = 2 * time.Second

// Probe checks that one backing dependency is reachable.
type Probe func(ctx context.Context) error

// HealthChecker runs reachability probes against the unlock pipeline's backends.
type HealthChecker struct {
	timeout time.Duration
	probes  map[string]Probe
}

// NewHealthChecker creates a checker with no probes.
func NewHealthChecker(timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = DefaultHealthCheckTimeout
	}
	return &HealthChecker{timeout: timeout, probes: make(map[string]Probe)}
}

// Add registers a named probe, replacing any probe with the same name.
func (h *HealthChecker) Add(name string, probe Probe) *HealthChecker {
	h.probes[name] = probe
	return h
}

// AddRedis registers a PING probe for client.
func (h *HealthChecker) AddRedis(client *redis.Client) *HealthChecker {
	return h.Add("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

// Len returns the number of registered probes.
func (h *HealthChecker) Len() int {
	return len(h.probes)
}

// Check runs every probe and joins the failures.
func (h *HealthChecker) Check(ctx context.Context) error {
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		probeCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := h.probes[name](probeCtx)
		cancel()

		if err != nil {
			logrus.Errorf("%s health check failed: %v", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		logrus.Debugf("%s health check passed", name)
	}

	return errors.Join(errs...)
}

// IsHealthy returns true if every probe passes.
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
