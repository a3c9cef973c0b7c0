package mock

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
)

// UnlockStore is an in-memory mock of service.UnlockStore for testing.
// Grants are conditional inserts under a lock, like the real stores.
type UnlockStore struct {
	// GetUnlockedFunc is called when GetUnlocked is invoked
	GetUnlockedFunc func(ctx context.Context, userID string) (achievement.UnlockedSet, error)

	// GrantFunc is called when Grant is invoked, before the default behavior
	GrantFunc func(ctx context.Context, userID, achievementID string) (bool, error)

	mu      sync.Mutex
	records map[string]map[string]time.Time

	// Call tracking
	GetUnlockedCalls []string
	GrantCalls       []GrantCall
}

// GrantCall tracks parameters for Grant calls
type GrantCall struct {
	UserID        string
	AchievementID string
}

// NewUnlockStore creates an empty mock store
func NewUnlockStore() *UnlockStore {
	return &UnlockStore{
		records: make(map[string]map[string]time.Time),
	}
}

// Seed marks achievements as already granted without tracking a call
func (m *UnlockStore) Seed(userID string, achievementIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range achievementIDs {
		m.insert(userID, id)
	}
}

// GetUnlocked returns the user's unlocked set
func (m *UnlockStore) GetUnlocked(ctx context.Context, userID string) (achievement.UnlockedSet, error) {
	m.mu.Lock()
	m.GetUnlockedCalls = append(m.GetUnlockedCalls, userID)
	fn := m.GetUnlockedFunc
	m.mu.Unlock()

	// Use custom function if provided
	if fn != nil {
		return fn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	set := achievement.NewUnlockedSet()
	for id := range m.records[userID] {
		set.Add(id)
	}
	return set, nil
}

// Grant inserts the pair if absent
func (m *UnlockStore) Grant(ctx context.Context, userID, achievementID string) (bool, error) {
	m.mu.Lock()
	m.GrantCalls = append(m.GrantCalls, GrantCall{UserID: userID, AchievementID: achievementID})
	fn := m.GrantFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, userID, achievementID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(userID, achievementID), nil
}

// Insert performs the default conditional insert. Useful from GrantFunc overrides.
func (m *UnlockStore) Insert(userID, achievementID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(userID, achievementID)
}

func (m *UnlockStore) insert(userID, achievementID string) bool {
	if m.records[userID] == nil {
		m.records[userID] = make(map[string]time.Time)
	}
	if _, exists := m.records[userID][achievementID]; exists {
		return false
	}
	m.records[userID][achievementID] = time.Now()
	return true
}

// RecordCount returns the number of records for a user
func (m *UnlockStore) RecordCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records[userID])
}

// GrantCallCount returns how many times Grant was called
func (m *UnlockStore) GrantCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GrantCalls)
}
