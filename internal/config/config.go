// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Backend selectors.
const (
	UnlockStoreRedis  = "redis"
	UnlockStoreSQLite = "sqlite"

	StatsProviderRedis     = "redis"
	StatsProviderAccelByte = "accelbyte"

	NotifierRedis = "redis"
	NotifierLog   = "log"

	DebounceModeMemory = "memory"
	DebounceModeRedis  = "redis"
)

// Config holds all application configuration loaded from environment variables.
// Parsing uses github.com/caarlos0/env struct tags.
type Config struct {
	// Server
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ExtendAchievementUnlocker"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// AccelByte. Only required when a backend talks to AGS.
	ABNamespace      string `env:"AB_NAMESPACE"`
	ABBaseURL        string `env:"AB_BASE_URL"`
	ABClientID       string `env:"AB_CLIENT_ID"`
	ABClientSecret   string `env:"AB_CLIENT_SECRET"`
	ABStatCodePrefix string `env:"AB_STAT_CODE_PREFIX" envDefault:"ach-"`
	RewardsEnabled   bool   `env:"REWARDS_ENABLED" envDefault:"false"`

	// Redis
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`

	// Achievement catalog and backends
	CatalogPath   string `env:"CATALOG_PATH" envDefault:"config/achievements.yaml"`
	UnlockStore   string `env:"UNLOCK_STORE" envDefault:"redis"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"achievements.db"`
	StatsProvider string `env:"STATS_PROVIDER" envDefault:"redis"`
	Notifier      string `env:"NOTIFIER" envDefault:"redis"`

	// Evaluation
	DebounceMode            string        `env:"DEBOUNCE_MODE" envDefault:"memory"`
	DebounceCooldown        time.Duration `env:"DEBOUNCE_COOLDOWN" envDefault:"2s"`
	PassTimeout             time.Duration `env:"PASS_TIMEOUT" envDefault:"2s"`
	ProgressMaxCount        int           `env:"PROGRESS_MAX_COUNT" envDefault:"4"`
	ProgressReachableMargin int           `env:"PROGRESS_REACHABLE_MARGIN" envDefault:"5"`

	// Telemetry
	ZipkinEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
}

// NeedsAccelByte reports whether any configured backend talks to AGS.
func (c *Config) NeedsAccelByte() bool {
	return c.StatsProvider == StatsProviderAccelByte || c.RewardsEnabled
}
