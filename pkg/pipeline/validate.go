package pipeline

import (
	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
	"github.com/sirupsen/logrus"
)

// ValidateWiring reports catalog entries whose requirement type has no registered extractor.
// Such achievements can never unlock. They are warnings, not errors.
func ValidateWiring(registry *rule.Registry, definitions []achievement.Definition) []string {
	var unsupported []string
	for _, d := range definitions {
		if registry.Supports(d.RequirementType) {
			continue
		}
		logrus.Warnf("achievement %s uses unsupported requirement type %q and will never unlock",
			d.ID, d.RequirementType)
		unsupported = append(unsupported, d.ID)
	}
	return unsupported
}
