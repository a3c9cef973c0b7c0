package achievement

import (
	"context"
	"errors"
	"testing"
)

type countingCatalog struct {
	calls int
	err   error
	defs  []Definition
}

func (c *countingCatalog) GetAll(ctx context.Context) ([]Definition, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.defs, nil
}

func TestNewStaticCatalog(t *testing.T) {
	tests := []struct {
		name        string
		definitions []Definition
		expectError bool
	}{
		{
			name: "valid catalog",
			definitions: []Definition{
				{ID: "first-fail", RequirementType: "fail_count", RequirementValue: 1, Category: CategoryCourage, Rarity: RarityCommon},
				{ID: "reactions-25", RequirementType: "reaction_given", RequirementValue: 25, Category: CategoryMutualAid, Rarity: RarityRare},
			},
		},
		{
			name: "duplicate ID",
			definitions: []Definition{
				{ID: "first-fail", RequirementType: "fail_count", RequirementValue: 1},
				{ID: "first-fail", RequirementType: "fail_count", RequirementValue: 2},
			},
			expectError: true,
		},
		{
			name: "negative requirement value",
			definitions: []Definition{
				{ID: "broken", RequirementType: "fail_count", RequirementValue: -1},
			},
			expectError: true,
		},
		{
			name: "unknown rarity",
			definitions: []Definition{
				{ID: "shiny", RequirementType: "fail_count", RequirementValue: 1, Rarity: "mythic"},
			},
			expectError: true,
		},
		{
			name: "unknown requirement type is allowed",
			definitions: []Definition{
				{ID: "future", RequirementType: "unknown_future_metric", RequirementValue: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewStaticCatalog(tt.definitions)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c.Count() != len(tt.definitions) {
				t.Errorf("Count() = %d, expected %d", c.Count(), len(tt.definitions))
			}
		})
	}
}

func TestStaticCatalog_GetAllPreservesOrder(t *testing.T) {
	c, err := NewStaticCatalog([]Definition{
		{ID: "b", RequirementType: "fail_count", RequirementValue: 1},
		{ID: "a", RequirementType: "fail_count", RequirementValue: 2},
		{ID: "c", RequirementType: "fail_count", RequirementValue: 3},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	defs, _ := c.GetAll(context.Background())
	expected := []string{"b", "a", "c"}
	for i, d := range defs {
		if d.ID != expected[i] {
			t.Errorf("defs[%d].ID = %s, expected %s", i, d.ID, expected[i])
		}
	}

	// Mutating the returned slice must not leak into the catalog
	defs[0].ID = "mutated"
	if d, ok := c.Get("b"); !ok || d.ID != "b" {
		t.Error("Catalog was mutated through GetAll result")
	}
}

func TestCachedCatalog(t *testing.T) {
	source := &countingCatalog{
		defs: []Definition{{ID: "first-fail", RequirementType: "fail_count", RequirementValue: 1}},
	}
	c := NewCachedCatalog(source)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		defs, err := c.GetAll(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(defs) != 1 {
			t.Fatalf("Expected 1 definition, got %d", len(defs))
		}
	}

	if source.calls != 1 {
		t.Errorf("source calls = %d, expected 1", source.calls)
	}
}

func TestCachedCatalog_ErrorIsNotCached(t *testing.T) {
	source := &countingCatalog{err: errors.New("db down")}
	c := NewCachedCatalog(source)
	ctx := context.Background()

	if _, err := c.GetAll(ctx); err == nil {
		t.Fatal("Expected error, got nil")
	}

	source.err = nil
	source.defs = []Definition{{ID: "first-fail", RequirementType: "fail_count", RequirementValue: 1}}

	defs, err := c.GetAll(ctx)
	if err != nil {
		t.Fatalf("Unexpected error after recovery: %v", err)
	}
	if len(defs) != 1 {
		t.Errorf("Expected 1 definition, got %d", len(defs))
	}
	if source.calls != 2 {
		t.Errorf("source calls = %d, expected 2", source.calls)
	}
}

func TestStatsSnapshot_Get(t *testing.T) {
	s := NewStatsSnapshot("u1", map[string]int{"fail_count": 3, "reaction_given": -4})

	if got := s.Get("fail_count"); got != 3 {
		t.Errorf("Get(fail_count) = %d, expected 3", got)
	}
	if got := s.Get("reaction_given"); got != 0 {
		t.Errorf("Get(reaction_given) = %d, expected 0 for negative counter", got)
	}
	if got := s.Get("missing"); got != 0 {
		t.Errorf("Get(missing) = %d, expected 0", got)
	}
	if got := s.Max(); got != 3 {
		t.Errorf("Max() = %d, expected 3", got)
	}
}

func TestRarityOrder(t *testing.T) {
	order := []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
	for i := 0; i < len(order)-1; i++ {
		if !order[i].Less(order[i+1]) {
			t.Errorf("%s should order before %s", order[i], order[i+1])
		}
	}
	if Rarity("mythic").Valid() {
		t.Error("Unknown rarity should not be valid")
	}
}
