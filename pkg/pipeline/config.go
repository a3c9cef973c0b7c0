package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"gopkg.in/yaml.v3"
)

// Config is the achievement catalog file.
type Config struct {
	Achievements []AchievementConfig `yaml:"achievements"`
}

// AchievementConfig is one catalog entry.
type AchievementConfig struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	Icon             string `yaml:"icon"`
	Category         string `yaml:"category"`
	Rarity           string `yaml:"rarity"`
	RequirementType  string `yaml:"requirementType"`
	RequirementValue int    `yaml:"requirementValue"`
	RewardItemID     string `yaml:"rewardItemId,omitempty"`

	// Disabled entries stay in the file but are left out of the catalog.
	Disabled bool `yaml:"disabled,omitempty"`
}

// ToDefinition converts the entry into a catalog definition.
func (a AchievementConfig) ToDefinition() achievement.Definition {
	return achievement.Definition{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		Icon:             a.Icon,
		Category:         achievement.Category(a.Category),
		Rarity:           achievement.Rarity(a.Rarity),
		RequirementType:  a.RequirementType,
		RequirementValue: a.RequirementValue,
		RewardItemID:     a.RewardItemID,
	}
}

// LoadConfig loads the catalog from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses and validates catalog YAML.
func ParseConfig(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks every entry, disabled ones included, and rejects duplicate IDs.
func (c *Config) Validate() error {
	ids := make(map[string]bool)
	for _, a := range c.Achievements {
		if err := a.ToDefinition().Validate(); err != nil {
			return err
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate achievement ID: %s", a.ID)
		}
		ids[a.ID] = true
	}
	return nil
}

// Definitions returns the enabled entries in file order.
func (c *Config) Definitions() []achievement.Definition {
	definitions := make([]achievement.Definition, 0, len(c.Achievements))
	for _, a := range c.Achievements {
		if a.Disabled {
			continue
		}
		definitions = append(definitions, a.ToDefinition())
	}
	return definitions
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
