// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// A .env file is loaded first when present (local development).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse parses the current environment into a Config without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate checks ranges, backend selectors and cross-field requirements.
func (c *Config) Validate() error {
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := oneOf("UNLOCK_STORE", c.UnlockStore, UnlockStoreRedis, UnlockStoreSQLite); err != nil {
		return err
	}
	if err := oneOf("STATS_PROVIDER", c.StatsProvider, StatsProviderRedis, StatsProviderAccelByte); err != nil {
		return err
	}
	if err := oneOf("NOTIFIER", c.Notifier, NotifierRedis, NotifierLog); err != nil {
		return err
	}
	if err := oneOf("DEBOUNCE_MODE", c.DebounceMode, DebounceModeMemory, DebounceModeRedis); err != nil {
		return err
	}

	if c.UnlockStore == UnlockStoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required when UNLOCK_STORE=%s", UnlockStoreSQLite)
	}

	if c.DebounceCooldown < 0 {
		return fmt.Errorf("DEBOUNCE_COOLDOWN must be non-negative, got %s", c.DebounceCooldown)
	}
	if c.PassTimeout <= 0 {
		return fmt.Errorf("PASS_TIMEOUT must be positive, got %s", c.PassTimeout)
	}
	if c.ProgressMaxCount < 1 {
		return fmt.Errorf("PROGRESS_MAX_COUNT must be at least 1, got %d", c.ProgressMaxCount)
	}
	if c.ProgressReachableMargin < 0 {
		return fmt.Errorf("PROGRESS_REACHABLE_MARGIN must be non-negative, got %d", c.ProgressReachableMargin)
	}

	if c.NeedsAccelByte() {
		if c.ABNamespace == "" {
			return fmt.Errorf("AB_NAMESPACE is required when AccelByte services are used")
		}
		if c.ABBaseURL == "" || c.ABClientID == "" || c.ABClientSecret == "" {
			return fmt.Errorf("AB_BASE_URL, AB_CLIENT_ID and AB_CLIENT_SECRET are required when AccelByte services are used")
		}
	}

	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %q (must be one of %v)", key, value, allowed)
}
