package service

// Dependencies holds the collaborators the unlock pipeline needs.
// Rewards may be nil; the other services are required.
type Dependencies struct {
	Stats         StatsProvider
	Unlocks       UnlockStore
	Notifier      NotificationEmitter
	RewardGranter EntitlementGranter
}

// NewDependencies creates a new dependencies container.
func NewDependencies() *Dependencies {
	return &Dependencies{}
}

// WithStatsProvider sets the stats provider
func (d *Dependencies) WithStatsProvider(service StatsProvider) *Dependencies {
	d.Stats = service
	return d
}

// WithUnlockStore sets the unlock store
func (d *Dependencies) WithUnlockStore(service UnlockStore) *Dependencies {
	d.Unlocks = service
	return d
}

// WithNotifier sets the notification emitter
func (d *Dependencies) WithNotifier(service NotificationEmitter) *Dependencies {
	d.Notifier = service
	return d
}

// WithRewardGranter sets the entitlement granter used for reward items
func (d *Dependencies) WithRewardGranter(service EntitlementGranter) *Dependencies {
	d.RewardGranter = service
	return d
}
