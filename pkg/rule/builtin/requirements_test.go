package builtin

import (
	"testing"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
)

func TestRegisterRequirements(t *testing.T) {
	registry := rule.NewRegistry()
	if err := RegisterRequirements(registry); err != nil {
		t.Fatalf("RegisterRequirements() error = %v", err)
	}

	for _, typ := range append(CounterTypes, TypeBadgesPercentage) {
		if !registry.Supports(typ) {
			t.Errorf("Expected requirement type %s to be registered", typ)
		}
	}

	if err := RegisterRequirements(registry); err == nil {
		t.Error("Expected error when registering built-ins twice")
	}
}

func TestCounterRequirements(t *testing.T) {
	registry := NewRegistry()
	stats := achievement.NewStatsSnapshot("user-1", map[string]int{
		TypeFailCount:      3,
		TypeStreakDays:     12,
		TypeCategoriesUsed: 4,
	})
	in := &rule.Input{Stats: stats}

	tests := []struct {
		typ      string
		expected int
	}{
		{TypeFailCount, 3},
		{TypeStreakDays, 12},
		{TypeCategoriesUsed, 4},
		{TypeCommentCount, 0},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			extract, ok := registry.Get(tt.typ)
			if !ok {
				t.Fatalf("requirement type %s not registered", tt.typ)
			}
			if got := extract(in); got != tt.expected {
				t.Errorf("extract() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestBadgesPercentage(t *testing.T) {
	catalog := []achievement.Definition{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	tests := []struct {
		name     string
		catalog  []achievement.Definition
		unlocked achievement.UnlockedSet
		expected int
	}{
		{"empty catalog", nil, achievement.NewUnlockedSet("a"), 0},
		{"none unlocked", catalog, nil, 0},
		{"one of three rounds to 33", catalog, achievement.NewUnlockedSet("a"), 33},
		{"two of three rounds to 67", catalog, achievement.NewUnlockedSet("a", "b"), 67},
		{"all unlocked", catalog, achievement.NewUnlockedSet("a", "b", "c"), 100},
		{"unknown ids ignored", catalog, achievement.NewUnlockedSet("a", "gone"), 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &rule.Input{Catalog: tt.catalog, Unlocked: tt.unlocked}
			if got := BadgesPercentage(in); got != tt.expected {
				t.Errorf("BadgesPercentage() = %d, expected %d", got, tt.expected)
			}
		})
	}
}
