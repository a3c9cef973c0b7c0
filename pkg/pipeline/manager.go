package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/debounce"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/metrics"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/progress"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/rule"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/service"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/signal"
	"github.com/sirupsen/logrus"
)

// DefaultPassTimeout bounds the external calls of one evaluation pass.
const DefaultPassTimeout = 2 * time.Second

// ErrGrantFailed is wrapped by the error returned when some grants of a batch failed.
var ErrGrantFailed = errors.New("achievement grant failed")

// Manager orchestrates the unlock pipeline:
// Trigger → Debounce → {Unlocked, Catalog, Stats} → Evaluate → Grant → Notify
type Manager struct {
	gate       debounce.Gate
	catalog    achievement.Catalog
	engine     *rule.Engine
	calculator *progress.Calculator
	deps       *service.Dependencies
	cfg        ManagerConfig
}

// ManagerConfig tunes the manager. Zero values use the defaults.
type ManagerConfig struct {
	PassTimeout time.Duration

	// RewardQuantity is the quantity of each reward item granted.
	RewardQuantity int

	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewManager creates a new pipeline manager with all required components.
func NewManager(
	gate debounce.Gate,
	catalog achievement.Catalog,
	engine *rule.Engine,
	calculator *progress.Calculator,
	deps *service.Dependencies,
	cfg ManagerConfig,
) *Manager {
	if cfg.PassTimeout <= 0 {
		cfg.PassTimeout = DefaultPassTimeout
	}
	if cfg.RewardQuantity <= 0 {
		cfg.RewardQuantity = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Manager{
		gate:       gate,
		catalog:    catalog,
		engine:     engine,
		calculator: calculator,
		deps:       deps,
		cfg:        cfg,
	}
}

// OnActivity runs an evaluation pass for the event's user unless the user is in cooldown.
// It returns the achievements newly granted by this pass. A suppressed trigger returns
// nothing and no error.
func (m *Manager) OnActivity(ctx context.Context, event signal.ActivityEvent) ([]achievement.Definition, error) {
	now := m.cfg.Now()
	event = event.Normalize(now)
	if err := event.Validate(); err != nil {
		return nil, err
	}

	metrics.TriggersTotal.WithLabelValues(event.Kind.Label()).Inc()

	// The cooldown runs on the server clock. Event timestamps come from callers.
	if !m.gate.ShouldEvaluate(ctx, event.UserID, now) {
		metrics.TriggersDebouncedTotal.Inc()
		m.cfg.Logger.WithField("user", event.UserID).Debugf("trigger %s debounced", event.Kind)
		return nil, nil
	}

	return m.Evaluate(ctx, event.UserID)
}

// Evaluate runs one evaluation pass without consulting the debouncer.
//
// Reads of the unlocked set, catalog and stats happen before any write; if one fails
// the pass aborts without grants or notification. Grants are independent: a failed grant
// does not stop the rest of the batch, and the granted list is returned together with an
// error wrapping ErrGrantFailed. A notification failure is logged and never returned.
func (m *Manager) Evaluate(ctx context.Context, userID string) ([]achievement.Definition, error) {
	start := time.Now()
	defer func() {
		metrics.PassDuration.Observe(time.Since(start).Seconds())
	}()

	log := m.cfg.Logger.WithField("user", userID)

	ctx, cancel := context.WithTimeout(ctx, m.cfg.PassTimeout)
	defer cancel()

	// Always from the durable store; another session may have granted since our last pass.
	unlocked, err := m.deps.Unlocks.GetUnlocked(ctx, userID)
	if err != nil {
		metrics.PassesTotal.WithLabelValues(metrics.OutcomeAborted).Inc()
		log.Errorf("failed to read unlocked achievements: %v", err)
		return nil, fmt.Errorf("failed to read unlocked achievements: %w", err)
	}

	catalog, err := m.catalog.GetAll(ctx)
	if err != nil {
		metrics.PassesTotal.WithLabelValues(metrics.OutcomeAborted).Inc()
		log.Errorf("failed to load achievement catalog: %v", err)
		return nil, fmt.Errorf("failed to load achievement catalog: %w", err)
	}

	stats, err := m.deps.Stats.Snapshot(ctx, userID)
	if err != nil {
		metrics.PassesTotal.WithLabelValues(metrics.OutcomeAborted).Inc()
		log.Errorf("failed to read stats: %v", err)
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	stats.UserID = userID

	qualified := m.engine.Evaluate(catalog, unlocked, stats)
	if len(qualified) == 0 {
		metrics.PassesTotal.WithLabelValues(metrics.OutcomeNone).Inc()
		log.Debugf("no new achievements")
		return nil, nil
	}

	byID := make(map[string]achievement.Definition, len(catalog))
	for _, d := range catalog {
		byID[d.ID] = d
	}

	granted, grantErr := m.grantAll(ctx, log, userID, qualified, byID)

	if len(granted) > 0 {
		m.notify(ctx, log, userID, granted)
		m.grantRewards(ctx, log, userID, granted)
	}

	switch {
	case grantErr != nil:
		metrics.PassesTotal.WithLabelValues(metrics.OutcomePartial).Inc()
	case len(granted) > 0:
		metrics.PassesTotal.WithLabelValues(metrics.OutcomeUnlocked).Inc()
	default:
		metrics.PassesTotal.WithLabelValues(metrics.OutcomeNone).Inc()
	}

	return granted, grantErr
}

// grantAll grants every qualified ID and keeps only those the store actually inserted.
func (m *Manager) grantAll(
	ctx context.Context,
	log logrus.FieldLogger,
	userID string,
	qualified []string,
	byID map[string]achievement.Definition,
) ([]achievement.Definition, error) {
	var granted []achievement.Definition
	var errs []error

	for _, id := range qualified {
		inserted, err := m.deps.Unlocks.Grant(ctx, userID, id)
		if err != nil {
			metrics.GrantsTotal.WithLabelValues(metrics.GrantFailed).Inc()
			log.WithField("achievement", id).Errorf("grant failed, will retry on next trigger: %v", err)
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}

		if !inserted {
			// Another pass granted it between our read and this write.
			metrics.GrantsTotal.WithLabelValues(metrics.GrantDuplicate).Inc()
			log.WithField("achievement", id).Debugf("already granted")
			continue
		}

		metrics.GrantsTotal.WithLabelValues(metrics.GrantInserted).Inc()
		granted = append(granted, byID[id])
	}

	if len(errs) > 0 {
		return granted, fmt.Errorf("%w: %w", ErrGrantFailed, errors.Join(errs...))
	}
	return granted, nil
}

func (m *Manager) notify(ctx context.Context, log logrus.FieldLogger, userID string, granted []achievement.Definition) {
	if m.deps.Notifier == nil {
		return
	}

	if err := m.deps.Notifier.Notify(ctx, userID, granted); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Warnf("failed to notify %d unlocked achievements: %v", len(granted), err)
		return
	}

	metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Infof("unlocked %d achievements", len(granted))
}

// grantRewards is best-effort. The achievement is already recorded, so failures are only logged.
func (m *Manager) grantRewards(ctx context.Context, log logrus.FieldLogger, userID string, granted []achievement.Definition) {
	if m.deps.RewardGranter == nil {
		return
	}

	for _, d := range granted {
		if d.RewardItemID == "" {
			continue
		}

		err := m.deps.RewardGranter.GrantEntitlement(ctx, userID, d.RewardItemID, m.cfg.RewardQuantity)
		if err != nil {
			metrics.RewardsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
			log.WithField("achievement", d.ID).Errorf("failed to grant reward item %s: %v", d.RewardItemID, err)
			continue
		}

		metrics.RewardsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		log.WithField("achievement", d.ID).Infof("granted reward item %s", d.RewardItemID)
	}
}

// GetNextChallenges returns progress for locked achievements closest to completion.
// It reads the same state as a pass but never writes and ignores the debouncer.
func (m *Manager) GetNextChallenges(ctx context.Context, userID string, maxCount int) ([]progress.Entry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is empty", signal.ErrInvalidEvent)
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.PassTimeout)
	defer cancel()

	unlocked, err := m.deps.Unlocks.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read unlocked achievements: %w", err)
	}

	catalog, err := m.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievement catalog: %w", err)
	}

	stats, err := m.deps.Stats.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	stats.UserID = userID

	return m.calculator.NextChallenges(catalog, unlocked, stats, maxCount), nil
}

// Catalog returns the catalog used by this manager.
func (m *Manager) Catalog() achievement.Catalog {
	return m.catalog
}
