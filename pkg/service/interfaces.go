package service

import (
	"context"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
)

// Collaborator interfaces consumed by the unlock pipeline.
//
// Every implementation must be safe for concurrent use: passes for different users
// run in parallel without coordination.

// StatsProvider returns a fresh counter snapshot for a user.
type StatsProvider interface {
	Snapshot(ctx context.Context, userID string) (achievement.StatsSnapshot, error)
}

// UnlockStore is the durable record of grants and the source of truth for the unlocked set.
type UnlockStore interface {
	// GetUnlocked reads the user's unlocked set from durable storage.
	GetUnlocked(ctx context.Context, userID string) (achievement.UnlockedSet, error)

	// Grant inserts the (user, achievement) pair if absent.
	// Granting an existing pair is not an error; inserted is false.
	Grant(ctx context.Context, userID, achievementID string) (inserted bool, err error)
}

// NotificationEmitter delivers a batch of newly unlocked achievements to the UI layer.
// It is best-effort; a failure never rolls back a grant.
type NotificationEmitter interface {
	Notify(ctx context.Context, userID string, achievements []achievement.Definition) error
}

// EntitlementGranter grants a platform item to a user.
type EntitlementGranter interface {
	// GrantEntitlement grants an entitlement/item to a player
	GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error
}
