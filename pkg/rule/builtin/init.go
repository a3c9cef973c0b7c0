package builtin

import (
	"fmt"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
	"github.com/sirupsen/logrus"
)

// RegisterRequirements registers all built-in requirement types with the registry.
func RegisterRequirements(registry *rule.Registry) error {
	for _, t := range CounterTypes {
		if err := registry.Register(t, rule.CounterExtractor(t)); err != nil {
			return fmt.Errorf("failed to register requirement %s: %w", t, err)
		}
	}

	if err := registry.Register(TypeBadgesPercentage, BadgesPercentage); err != nil {
		return fmt.Errorf("failed to register requirement %s: %w", TypeBadgesPercentage, err)
	}

	logrus.Infof("registered %d built-in requirement types", registry.Count())
	return nil
}

// NewRegistry returns a registry with all built-in requirement types.
func NewRegistry() *rule.Registry {
	registry := rule.NewRegistry()
	if err := RegisterRequirements(registry); err != nil {
		// Only reachable on duplicate built-in names.
		panic(err)
	}
	return registry
}
