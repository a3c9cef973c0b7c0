// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-achievement-unlocker/internal/config"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/debounce"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/pipeline"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/progress"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/service"
	"github.com/sirupsen/logrus"
)

// InitPipeline creates the pipeline manager.
//
// The flow of one trigger is:
// Activity → Debounce → {Unlocked, Catalog, Stats} → Evaluate → Grant → Notify
//
// Backends are chosen in internal/app and passed in through deps.
func InitPipeline(
	gate debounce.Gate,
	catalog achievement.Catalog,
	engine *rule.Engine,
	deps *service.Dependencies,
	cfg *config.Config,
) *pipeline.Manager {
	calculator := progress.NewCalculator(engine, progress.Policy{
		DefaultMaxCount: cfg.ProgressMaxCount,
		ReachableMargin: cfg.ProgressReachableMargin,
	})

	manager := pipeline.NewManager(gate, catalog, engine, calculator, deps, pipeline.ManagerConfig{
		PassTimeout: cfg.PassTimeout,
	})

	logrus.Infof("initialized pipeline manager (pass timeout %s)", cfg.PassTimeout)
	return manager
}
