package builtin

import (
	"math"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
)

// Requirement types backed directly by a stats counter.
const (
	TypeFailCount        = "fail_count"
	TypeReactionGiven    = "reaction_given"
	TypeReactionReceived = "reaction_received"
	TypeCommentCount     = "comment_count"
	TypeStreakDays       = "streak_days"
	TypeLoginDays        = "login_days"
	TypeCategoriesUsed   = "categories_used"
)

// TypeBadgesPercentage compares the share of the catalog already unlocked, in percent.
const TypeBadgesPercentage = "badges_percentage"

// CounterTypes lists the requirement types that read a counter of the same name.
var CounterTypes = []string{
	TypeFailCount,
	TypeReactionGiven,
	TypeReactionReceived,
	TypeCommentCount,
	TypeStreakDays,
	TypeLoginDays,
	TypeCategoriesUsed,
}

// BadgesPercentage returns round(100 * unlocked / catalog size), or 0 for an empty catalog.
func BadgesPercentage(in *rule.Input) int {
	total := len(in.Catalog)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(in.UnlockedInCatalog()) / float64(total)))
}
