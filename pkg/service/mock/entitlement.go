package mock

import (
	"context"
	"sync"
)

// EntitlementGranter is a mock implementation of service.EntitlementGranter for testing
type EntitlementGranter struct {
	// GrantEntitlementFunc is called when GrantEntitlement is invoked
	GrantEntitlementFunc func(ctx context.Context, userID, itemID string, quantity int) error

	// Default data
	DefaultError error

	mu sync.Mutex

	// Call tracking
	GrantEntitlementCalls []GrantEntitlementCall
}

// GrantEntitlementCall tracks parameters for GrantEntitlement calls
type GrantEntitlementCall struct {
	UserID   string
	ItemID   string
	Quantity int
}

func NewEntitlementGranter() *EntitlementGranter {
	return &EntitlementGranter{}
}

// GrantEntitlement records the grant
func (m *EntitlementGranter) GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error {
	m.mu.Lock()
	m.GrantEntitlementCalls = append(m.GrantEntitlementCalls, GrantEntitlementCall{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: quantity,
	})
	fn := m.GrantEntitlementFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, userID, itemID, quantity)
	}
	return m.DefaultError
}

// Calls returns a copy of the recorded calls
func (m *EntitlementGranter) Calls() []GrantEntitlementCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GrantEntitlementCall, len(m.GrantEntitlementCalls))
	copy(out, m.GrantEntitlementCalls)
	return out
}
