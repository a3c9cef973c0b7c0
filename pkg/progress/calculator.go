package progress

import (
	"sort"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
	"github.com/sirupsen/logrus"
)

// Entry is the progress of a single locked achievement. It is derived, never persisted.
type Entry struct {
	AchievementID string  `json:"achievementId"`
	Current       int     `json:"current"`
	Required      int     `json:"required"`
	Ratio         float64 `json:"ratio"`
}

// NewEntry builds an entry with current clamped to [0, required].
// Ratio is 0 when required is 0, so it always stays within [0, 1].
func NewEntry(achievementID string, current, required int) Entry {
	if required < 0 {
		required = 0
	}
	if current < 0 {
		current = 0
	}
	if current > required {
		current = required
	}

	ratio := 0.0
	if required > 0 {
		ratio = float64(current) / float64(required)
	}

	return Entry{
		AchievementID: achievementID,
		Current:       current,
		Required:      required,
		Ratio:         ratio,
	}
}

// Policy controls which locked achievements are surfaced as next challenges.
type Policy struct {
	// DefaultMaxCount applies when the caller passes a non-positive max count.
	DefaultMaxCount int

	// ReachableMargin lets a zero-progress achievement show when its threshold is at most
	// this far above the user's activity level (the largest counter in the snapshot).
	ReachableMargin int
}

// DefaultPolicy returns the default selection policy.
func DefaultPolicy() Policy {
	return Policy{
		DefaultMaxCount: 4,
		ReachableMargin: 5,
	}
}

// Calculator computes next-challenge progress. It performs no I/O.
type Calculator struct {
	engine *rule.Engine
	policy Policy
}

// NewCalculator creates a calculator that reads current values through the rule engine.
func NewCalculator(engine *rule.Engine, policy Policy) *Calculator {
	if policy.DefaultMaxCount <= 0 {
		policy.DefaultMaxCount = DefaultPolicy().DefaultMaxCount
	}
	if policy.ReachableMargin < 0 {
		policy.ReachableMargin = 0
	}
	return &Calculator{
		engine: engine,
		policy: policy,
	}
}

// Policy returns the effective policy.
func (c *Calculator) Policy() Policy {
	return c.policy
}

// NextChallenges returns up to maxCount locked achievements closest to completion.
// Entries are sorted by ratio descending; ties go to the more common rarity, then catalog order.
func (c *Calculator) NextChallenges(catalog []achievement.Definition, unlocked achievement.UnlockedSet, stats achievement.StatsSnapshot, maxCount int) []Entry {
	if maxCount <= 0 {
		maxCount = c.policy.DefaultMaxCount
	}

	activityLevel := stats.Max()

	type candidate struct {
		entry  Entry
		rarity achievement.Rarity
	}

	var candidates []candidate
	for _, d := range catalog {
		if unlocked.Has(d.ID) {
			continue
		}

		current, ok := c.engine.Current(d, catalog, unlocked, stats)
		if !ok {
			continue
		}

		entry := NewEntry(d.ID, current, d.RequirementValue)
		if !c.visible(entry, activityLevel) {
			continue
		}

		candidates = append(candidates, candidate{entry: entry, rarity: d.Rarity})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].entry.Ratio != candidates[j].entry.Ratio {
			return candidates[i].entry.Ratio > candidates[j].entry.Ratio
		}
		return candidates[i].rarity.Less(candidates[j].rarity)
	})

	if len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}

	entries := make([]Entry, 0, len(candidates))
	for _, cand := range candidates {
		entries = append(entries, cand.entry)
	}

	logrus.Debugf("computed %d next challenges for user %s", len(entries), stats.UserID)
	return entries
}

func (c *Calculator) visible(e Entry, activityLevel int) bool {
	if e.Current > 0 {
		return true
	}
	return e.Required <= activityLevel+c.policy.ReachableMargin
}
