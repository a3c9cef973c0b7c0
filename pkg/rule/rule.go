package rule

import (
	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
)

// Input is everything an extractor may read during one evaluation pass.
// It is built once per pass and shared read-only by all extractors.
type Input struct {
	Catalog  []achievement.Definition
	Unlocked achievement.UnlockedSet
	Stats    achievement.StatsSnapshot
}

// Extractor maps an evaluation input to the current value of one requirement type.
// Extractors are pure: no I/O, no mutation of the input.
type Extractor func(in *Input) int

// CounterExtractor returns an extractor that reads a single stats counter.
// Missing and negative counters read as 0.
func CounterExtractor(counter string) Extractor {
	return func(in *Input) int {
		return in.Stats.Get(counter)
	}
}

// UnlockedInCatalog counts unlocked IDs that are present in the catalog.
// Orphan IDs in the unlocked set are ignored.
func (in *Input) UnlockedInCatalog() int {
	count := 0
	for _, d := range in.Catalog {
		if in.Unlocked.Has(d.ID) {
			count++
		}
	}
	return count
}
