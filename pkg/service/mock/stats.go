package mock

import (
	"context"
	"sync"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
)

// StatsProvider is a mock implementation of service.StatsProvider for testing
type StatsProvider struct {
	// SnapshotFunc is called when Snapshot is invoked
	SnapshotFunc func(ctx context.Context, userID string) (achievement.StatsSnapshot, error)

	// Default data
	DefaultError error

	mu       sync.Mutex
	counters map[string]map[string]int

	// Call tracking
	SnapshotCalls []string
}

// NewStatsProvider creates a mock with no stats
func NewStatsProvider() *StatsProvider {
	return &StatsProvider{
		counters: make(map[string]map[string]int),
	}
}

// Set replaces a user's counters
func (m *StatsProvider) Set(userID string, counters map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[string]int, len(counters))
	for k, v := range counters {
		cp[k] = v
	}
	m.counters[userID] = cp
}

// Snapshot returns the user's counters
func (m *StatsProvider) Snapshot(ctx context.Context, userID string) (achievement.StatsSnapshot, error) {
	m.mu.Lock()
	m.SnapshotCalls = append(m.SnapshotCalls, userID)
	fn := m.SnapshotFunc
	m.mu.Unlock()

	// Use custom function if provided
	if fn != nil {
		return fn(ctx, userID)
	}

	// Use default behavior
	if m.DefaultError != nil {
		return achievement.StatsSnapshot{}, m.DefaultError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return achievement.NewStatsSnapshot(userID, m.counters[userID]), nil
}

// SnapshotCallCount returns how many times Snapshot was called
func (m *StatsProvider) SnapshotCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SnapshotCalls)
}
