package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "achievements.yaml")

	configContent := `
achievements:
  - id: first-fail
    name: First Fail
    description: Share your first failure
    icon: seedling
    category: courage
    rarity: common
    requirementType: fail_count
    requirementValue: 1

  - id: reactions-25
    name: Cheerleader
    category: mutual-aid
    rarity: rare
    requirementType: reaction_given
    requirementValue: 25
    rewardItemId: ${TEST_REWARD_ITEM:default-item}

  - id: retired
    requirementType: streak_days
    requirementValue: 100
    disabled: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(config.Achievements) != 3 {
		t.Errorf("expected 3 achievements, got %d", len(config.Achievements))
	}

	definitions := config.Definitions()
	if len(definitions) != 2 {
		t.Fatalf("expected 2 enabled definitions, got %d", len(definitions))
	}

	if definitions[0].ID != "first-fail" || definitions[0].Category != achievement.CategoryCourage {
		t.Errorf("unexpected first definition: %+v", definitions[0])
	}
	if definitions[1].RewardItemID != "default-item" {
		t.Errorf("expected default reward item, got %q", definitions[1].RewardItemID)
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	t.Setenv("FIRST_FAIL_THRESHOLD", "3")

	config, err := ParseConfig([]byte(`
achievements:
  - id: first-fail
    requirementType: fail_count
    requirementValue: ${FIRST_FAIL_THRESHOLD:1}
`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if got := config.Definitions()[0].RequirementValue; got != 3 {
		t.Errorf("RequirementValue = %d, expected 3", got)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "duplicate id",
			content: `
achievements:
  - id: a
    requirementType: fail_count
  - id: a
    requirementType: fail_count
`,
		},
		{
			name: "negative threshold",
			content: `
achievements:
  - id: a
    requirementType: fail_count
    requirementValue: -1
`,
		},
		{
			name: "unknown rarity",
			content: `
achievements:
  - id: a
    rarity: mythic
    requirementType: fail_count
`,
		},
		{
			name: "missing requirement type",
			content: `
achievements:
  - id: a
`,
		},
		{
			name:    "malformed yaml",
			content: "achievements: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "value"},
		{"${TEST_VAR:fallback}", "value"},
		{"${UNSET_TEST_VAR:fallback}", "fallback"},
		{"${UNSET_TEST_VAR}", ""},
	}

	for _, tt := range tests {
		if got := expandEnvVars(tt.input); got != tt.expected {
			t.Errorf("expandEnvVars(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
