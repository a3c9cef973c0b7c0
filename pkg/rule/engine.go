package rule

import (
	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/sirupsen/logrus"
)

// Engine decides which achievements are newly satisfied.
// It performs no I/O and never returns errors.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new rule evaluation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// Evaluate returns the IDs of achievements that are not unlocked and whose requirement is met.
// The result follows catalog order. Unknown requirement types are skipped with a warning.
func (e *Engine) Evaluate(catalog []achievement.Definition, unlocked achievement.UnlockedSet, stats achievement.StatsSnapshot) []string {
	in := &Input{
		Catalog:  catalog,
		Unlocked: unlocked,
		Stats:    stats,
	}

	var qualified []string
	for _, d := range catalog {
		if unlocked.Has(d.ID) {
			continue
		}

		current, ok := e.current(d, in)
		if !ok {
			continue
		}

		if current >= d.RequirementValue {
			logrus.Debugf("achievement %s satisfied for user %s: %s=%d, required=%d",
				d.ID, stats.UserID, d.RequirementType, current, d.RequirementValue)
			qualified = append(qualified, d.ID)
		}
	}

	return qualified
}

// Current returns the current value of a definition's requirement type.
// The boolean is false when the requirement type is not supported.
func (e *Engine) Current(d achievement.Definition, catalog []achievement.Definition, unlocked achievement.UnlockedSet, stats achievement.StatsSnapshot) (int, bool) {
	return e.current(d, &Input{Catalog: catalog, Unlocked: unlocked, Stats: stats})
}

func (e *Engine) current(d achievement.Definition, in *Input) (int, bool) {
	extract, ok := e.registry.Get(d.RequirementType)
	if !ok {
		logrus.Warnf("achievement %s has unsupported requirement type %q, skipping",
			d.ID, d.RequirementType)
		return 0, false
	}

	current := extract(in)
	if current < 0 {
		current = 0
	}
	return current, true
}

// GetRegistry returns the requirement registry used by this engine.
func (e *Engine) GetRegistry() *Registry {
	return e.registry
}
