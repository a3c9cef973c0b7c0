// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/pipeline"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
	ruleBuiltin "github.com/AccelByte/extend-achievement-unlocker/pkg/rule/builtin"
	"github.com/sirupsen/logrus"
)

// InitRuleEngine creates a rule engine with the built-in requirement types and checks
// the catalog against it.
//
// To add a requirement type, register an extractor in pkg/rule/builtin/init.go.
// Catalog entries with an unregistered type are logged and never unlock.
func InitRuleEngine(definitions []achievement.Definition) (*rule.Engine, *rule.Registry) {
	registry := ruleBuiltin.NewRegistry()

	unsupported := pipeline.ValidateWiring(registry, definitions)
	if len(unsupported) > 0 {
		logrus.Warnf("%d of %d achievements use unsupported requirement types", len(unsupported), len(definitions))
	} else {
		logrus.Info("catalog wiring validation passed")
	}

	engine := rule.NewEngine(registry)
	logrus.Infof("initialized rule engine with %d requirement types", registry.Count())

	return engine, registry
}
