// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/internal/bootstrap"
	"github.com/AccelByte/extend-achievement-unlocker/internal/config"
	"github.com/AccelByte/extend-achievement-unlocker/internal/server"
	ruleBuiltin "github.com/AccelByte/extend-achievement-unlocker/pkg/rule/builtin"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/service"
	"github.com/cenkalti/backoff/v4"

	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/factory"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/iam"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	sdkAuth "github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/utils/auth"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	sqlStore          *service.SQLStore
	healthChecker     *service.HealthChecker
	shutdownTelemetry func(context.Context) error

	// cancelBackground stops the debouncer sweeper and the health monitor.
	cancelBackground context.CancelFunc

	// AccelByte SDK repositories, shared by every AGS client.
	configRepo *sdkAuth.ConfigRepositoryImpl
	tokenRepo  *sdkAuth.TokenRepositoryImpl
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. AccelByte SDK (only when AGS stats or rewards are configured)
// 2. Redis (only when a Redis backend is configured)
// 3. Backends (unlock store, stats provider, notifier, reward granter)
// 4. Catalog, rule engine, debouncer and pipeline manager
// 5. Servers (gRPC, metrics)
// 6. Telemetry (OpenTelemetry tracing)
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// Step 1: AccelByte SDK
	if cfg.NeedsAccelByte() {
		if err := app.initAccelByteSDKAuth(); err != nil {
			return nil, fmt.Errorf("failed to init AccelByte SDK: %w", err)
		}
	}

	// Step 2: Redis
	if app.needsRedis() {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	}

	// Step 3: Backends
	unlockStore, err := app.initUnlockStore()
	if err != nil {
		return nil, fmt.Errorf("failed to init unlock store: %w", err)
	}

	deps := service.NewDependencies().
		WithUnlockStore(unlockStore).
		WithStatsProvider(app.initStatsProvider()).
		WithNotifier(app.initNotifier())

	if cfg.RewardsEnabled {
		deps = deps.WithRewardGranter(app.initItemGranter())
	}

	app.healthChecker = service.NewHealthChecker(service.DefaultHealthCheckTimeout)
	if app.redisClient != nil {
		app.healthChecker.AddRedis(app.redisClient)
	}
	if app.sqlStore != nil {
		app.healthChecker.Add("sqlite", app.sqlStore.Ping)
	}

	// Step 4: Pipeline
	var catalogStore bootstrap.CatalogStore
	if app.sqlStore != nil {
		catalogStore = app.sqlStore
	}

	catalog, definitions, err := bootstrap.InitCatalog(ctx, cfg.CatalogPath, catalogStore)
	if err != nil {
		return nil, err
	}

	ruleEngine, _ := bootstrap.InitRuleEngine(definitions)

	backgroundCtx, cancel := context.WithCancel(context.Background())
	app.cancelBackground = cancel

	gate := bootstrap.InitGate(backgroundCtx, cfg.DebounceMode, cfg.DebounceCooldown, app.redisClient)
	pipelineManager := bootstrap.InitPipeline(gate, catalog, ruleEngine, deps, cfg)

	// Step 5: Servers
	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, pipelineManager)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	// Step 6: Telemetry
	shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0, cfg.ZipkinEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	logrus.Info("application initialized successfully")

	return app, nil
}

func (a *App) needsRedis() bool {
	return a.cfg.UnlockStore == config.UnlockStoreRedis ||
		a.cfg.StatsProvider == config.StatsProviderRedis ||
		a.cfg.Notifier == config.NotifierRedis ||
		a.cfg.DebounceMode == config.DebounceModeRedis
}

// initAccelByteSDKAuth performs the client login.
// The SDK reads AB_BASE_URL, AB_CLIENT_ID and AB_CLIENT_SECRET from the environment
// and refreshes the token at 80% of its TTL.
func (a *App) initAccelByteSDKAuth() error {
	a.configRepo = sdkAuth.DefaultConfigRepositoryImpl()
	a.tokenRepo = sdkAuth.DefaultTokenRepositoryImpl()
	refreshRepo := &sdkAuth.RefreshTokenImpl{AutoRefresh: true, RefreshRate: 0.8}

	oauthService := iam.OAuth20Service{
		Client:                 factory.NewIamClient(a.configRepo),
		ConfigRepository:       a.configRepo,
		TokenRepository:        a.tokenRepo,
		RefreshTokenRepository: refreshRepo,
	}

	clientID := a.configRepo.GetClientId()
	clientSecret := a.configRepo.GetClientSecret()

	if err := oauthService.LoginClient(&clientID, &clientSecret); err != nil {
		return fmt.Errorf("unable to login using clientId and clientSecret: %w", err)
	}

	logrus.Info("AccelByte SDK initialized and authenticated")
	return nil
}

// initRedis connects to Redis, retrying the first ping with exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		backoff.WithContext(maxRetries, ctx),
	)

	if err != nil {
		client.Close()
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}

func (a *App) initUnlockStore() (service.UnlockStore, error) {
	if a.cfg.UnlockStore == config.UnlockStoreSQLite {
		store, err := service.NewSQLStore(service.SQLStoreConfig{Path: a.cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		a.sqlStore = store
		logrus.Infof("using SQLite unlock store at %s", a.cfg.SQLitePath)
		return store, nil
	}

	logrus.Info("using Redis unlock store")
	return service.NewRedisUnlockStore(a.redisClient, service.RedisUnlockStoreConfig{}), nil
}

// initStatsProvider reuses a.configRepo and a.tokenRepo for the AGS client.
func (a *App) initStatsProvider() service.StatsProvider {
	if a.cfg.StatsProvider == config.StatsProviderAccelByte {
		statisticService := &social.UserStatisticService{
			Client:           factory.NewSocialClient(a.configRepo),
			ConfigRepository: a.configRepo,
			TokenRepository:  a.tokenRepo,
		}

		statCodes := service.DefaultStatCodes(a.cfg.ABStatCodePrefix, ruleBuiltin.CounterTypes)
		logrus.Infof("using AccelByte stats provider with %d stat codes", len(statCodes))

		return service.NewAccelByteStatsProvider(statisticService, service.AccelByteStatsProviderConfig{
			Namespace: a.cfg.ABNamespace,
			StatCodes: statCodes,
		})
	}

	logrus.Info("using Redis stats provider")
	return service.NewRedisStatsStore(a.redisClient, service.RedisStatsStoreConfig{})
}

func (a *App) initNotifier() service.NotificationEmitter {
	if a.cfg.Notifier == config.NotifierLog {
		logrus.Info("using log notification emitter")
		return service.NewLogNotificationEmitter()
	}

	emitter := service.NewRedisNotificationEmitter(a.redisClient, service.RedisNotificationEmitterConfig{})
	logrus.Infof("publishing unlock notifications on %s", emitter.Channel())
	return emitter
}

// initItemGranter reuses a.configRepo and a.tokenRepo for the AGS client.
func (a *App) initItemGranter() service.EntitlementGranter {
	fulfillmentService := &platform.FulfillmentService{
		Client:           factory.NewPlatformClient(a.configRepo),
		ConfigRepository: a.configRepo,
		TokenRepository:  a.tokenRepo,
	}

	return service.NewEntitlementService(fulfillmentService, service.EntitlementServiceConfig{
		Namespace: a.cfg.ABNamespace,
	})
}
