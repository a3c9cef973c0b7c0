package mock

import (
	"context"
	"sync"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
)

// NotificationEmitter is a mock implementation of service.NotificationEmitter for testing
type NotificationEmitter struct {
	// NotifyFunc is called when Notify is invoked
	NotifyFunc func(ctx context.Context, userID string, achievements []achievement.Definition) error

	// Default data
	DefaultError error

	mu sync.Mutex

	// Call tracking
	NotifyCalls []NotifyCall
}

// NotifyCall tracks parameters for Notify calls
type NotifyCall struct {
	UserID         string
	AchievementIDs []string
}

func NewNotificationEmitter() *NotificationEmitter {
	return &NotificationEmitter{}
}

// Notify records the batch
func (m *NotificationEmitter) Notify(ctx context.Context, userID string, achievements []achievement.Definition) error {
	ids := make([]string, 0, len(achievements))
	for _, a := range achievements {
		ids = append(ids, a.ID)
	}

	m.mu.Lock()
	m.NotifyCalls = append(m.NotifyCalls, NotifyCall{UserID: userID, AchievementIDs: ids})
	fn := m.NotifyFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, userID, achievements)
	}
	return m.DefaultError
}

// Calls returns a copy of the recorded calls
func (m *NotificationEmitter) Calls() []NotifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NotifyCall, len(m.NotifyCalls))
	copy(out, m.NotifyCalls)
	return out
}
