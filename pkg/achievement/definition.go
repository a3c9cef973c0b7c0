// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package achievement

import (
	"fmt"
	"sort"
	"time"
)

// Category groups achievements in the UI.
type Category string

const (
	CategoryCourage      Category = "courage"
	CategoryMutualAid    Category = "mutual-aid"
	CategoryPerseverance Category = "perseverance"
	CategorySpecial      Category = "special"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCourage, CategoryMutualAid, CategoryPerseverance, CategorySpecial:
		return true
	}
	return false
}

// Rarity is totally ordered: common < rare < epic < legendary.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rank returns the position of the rarity in its total order, or -1 if unknown.
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityRare:
		return 1
	case RarityEpic:
		return 2
	case RarityLegendary:
		return 3
	}
	return -1
}

// Valid reports whether r is one of the known rarities.
func (r Rarity) Valid() bool {
	return r.Rank() >= 0
}

// Less reports whether r orders before other.
func (r Rarity) Less(other Rarity) bool {
	return r.Rank() < other.Rank()
}

// Definition describes a single achievement in the catalog.
// Definitions are owned by the catalog and never mutated by the engine.
type Definition struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	Category         Category `json:"category"`
	Rarity           Rarity   `json:"rarity"`
	RequirementType  string   `json:"requirementType"`
	RequirementValue int      `json:"requirementValue"`

	// RewardItemID is an optional platform item granted together with the achievement.
	RewardItemID string `json:"rewardItemId,omitempty"`
}

// Validate checks the definition for data errors that make it unusable.
// An unrecognized requirement type is not an error here; the evaluator treats it as never satisfiable.
func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("achievement with empty ID found")
	}
	if d.RequirementType == "" {
		return fmt.Errorf("achievement %s has empty requirement type", d.ID)
	}
	if d.RequirementValue < 0 {
		return fmt.Errorf("achievement %s has negative requirement value %d", d.ID, d.RequirementValue)
	}
	if d.Category != "" && !d.Category.Valid() {
		return fmt.Errorf("achievement %s has unknown category %q", d.ID, d.Category)
	}
	if d.Rarity != "" && !d.Rarity.Valid() {
		return fmt.Errorf("achievement %s has unknown rarity %q", d.ID, d.Rarity)
	}
	return nil
}

// UnlockedSet is the set of achievement IDs a user has been granted.
type UnlockedSet map[string]struct{}

// NewUnlockedSet builds a set from the given IDs.
func NewUnlockedSet(ids ...string) UnlockedSet {
	s := make(UnlockedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set contains nothing.
func (s UnlockedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s UnlockedSet) Add(id string) {
	s[id] = struct{}{}
}

// Len returns the number of IDs in the set.
func (s UnlockedSet) Len() int {
	return len(s)
}

// IDs returns the IDs in sorted order.
func (s UnlockedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StatsSnapshot is a per-user counter map keyed by requirement type.
// It is recomputed for every evaluation pass and never cached by the engine.
type StatsSnapshot struct {
	UserID   string         `json:"userId"`
	Counters map[string]int `json:"counters"`
}

// NewStatsSnapshot creates a snapshot, copying the counters.
func NewStatsSnapshot(userID string, counters map[string]int) StatsSnapshot {
	cp := make(map[string]int, len(counters))
	for k, v := range counters {
		cp[k] = v
	}
	return StatsSnapshot{UserID: userID, Counters: cp}
}

// Get returns the counter for a requirement type.
// Missing keys read as 0 and negative counters are clamped to 0.
func (s StatsSnapshot) Get(requirementType string) int {
	v := s.Counters[requirementType]
	if v < 0 {
		return 0
	}
	return v
}

// Max returns the largest counter in the snapshot, or 0 when empty.
func (s StatsSnapshot) Max() int {
	highest := 0
	for _, v := range s.Counters {
		if v > highest {
			highest = v
		}
	}
	return highest
}

// UnlockRecord is the durable record of a grant. At most one exists per (UserID, AchievementID).
type UnlockRecord struct {
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	GrantedAt     time.Time `json:"grantedAt"`
}
