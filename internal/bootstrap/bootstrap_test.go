package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/internal/config"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/debounce"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/service"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/service/mock"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/signal"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

const testCatalog = `
achievements:
  - id: first-fail
    name: First Fail
    category: perseverance
    rarity: common
    requirementType: fail_count
    requirementValue: 1
  - id: future
    name: Future
    requirementType: unknown_future_metric
    requirementValue: 1
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "achievements.yaml")
	if err := os.WriteFile(path, []byte(testCatalog), 0o600); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

func TestInitCatalog_Static(t *testing.T) {
	catalog, definitions, err := InitCatalog(context.Background(), writeCatalog(t), nil)
	if err != nil {
		t.Fatalf("InitCatalog() error = %v", err)
	}
	if len(definitions) != 2 {
		t.Fatalf("definitions = %d, expected 2", len(definitions))
	}

	all, err := catalog.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "first-fail" {
		t.Errorf("GetAll() = %v, expected catalog file order", all)
	}
}

func TestInitCatalog_SQLStore(t *testing.T) {
	store, err := service.NewSQLStore(service.SQLStoreConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewSQLStore() error = %v", err)
	}
	defer store.Close()

	catalog, _, err := InitCatalog(context.Background(), writeCatalog(t), store)
	if err != nil {
		t.Fatalf("InitCatalog() error = %v", err)
	}

	all, err := catalog.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "first-fail" || all[1].ID != "future" {
		t.Errorf("GetAll() = %v, expected seeded definitions in order", all)
	}
}

func TestInitCatalog_MissingFile(t *testing.T) {
	if _, _, err := InitCatalog(context.Background(), "does-not-exist.yaml", nil); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

func TestInitRuleEngine(t *testing.T) {
	_, definitions, err := InitCatalog(context.Background(), writeCatalog(t), nil)
	if err != nil {
		t.Fatalf("InitCatalog() error = %v", err)
	}

	engine, registry := InitRuleEngine(definitions)
	if engine == nil || registry == nil {
		t.Fatal("Expected non-nil engine and registry")
	}
	if !registry.Supports("fail_count") {
		t.Error("Expected built-in fail_count to be registered")
	}
	if registry.Supports("unknown_future_metric") {
		t.Error("Expected unknown_future_metric to stay unregistered")
	}
}

func TestInitGate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, ok := InitGate(ctx, config.DebounceModeMemory, time.Second, nil).(*debounce.Debouncer); !ok {
		t.Error("Expected in-memory debouncer for memory mode")
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	if _, ok := InitGate(ctx, config.DebounceModeRedis, time.Second, client).(*debounce.RedisGate); !ok {
		t.Error("Expected Redis gate for redis mode")
	}
}

func TestInitPipeline(t *testing.T) {
	catalog, definitions, err := InitCatalog(context.Background(), writeCatalog(t), nil)
	if err != nil {
		t.Fatalf("InitCatalog() error = %v", err)
	}
	engine, _ := InitRuleEngine(definitions)

	stats := mock.NewStatsProvider()
	stats.Set("user-1", map[string]int{"fail_count": 1})
	deps := service.NewDependencies().
		WithStatsProvider(stats).
		WithUnlockStore(mock.NewUnlockStore()).
		WithNotifier(mock.NewNotificationEmitter())

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager := InitPipeline(InitGate(ctx, config.DebounceModeMemory, cfg.DebounceCooldown, nil), catalog, engine, deps, cfg)

	granted, err := manager.OnActivity(ctx, signal.NewActivityEvent("user-1", signal.KindLogin, time.Now()))
	if err != nil {
		t.Fatalf("OnActivity() error = %v", err)
	}
	if len(granted) != 1 || granted[0].ID != "first-fail" {
		t.Errorf("OnActivity() = %v, expected [first-fail]", granted)
	}
}

func TestInitCatalog_ShippedFile(t *testing.T) {
	_, definitions, err := InitCatalog(context.Background(), "../../config/achievements.yaml", nil)
	if err != nil {
		t.Fatalf("InitCatalog() error = %v", err)
	}

	_, registry := InitRuleEngine(definitions)
	for _, d := range definitions {
		if !registry.Supports(d.RequirementType) {
			t.Errorf("achievement %s uses unsupported requirement type %s", d.ID, d.RequirementType)
		}
	}
}
