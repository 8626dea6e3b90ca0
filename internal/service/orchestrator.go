package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/agentdeck/internal/domain"
	"go.uber.org/zap"
)

const defaultPollInterval = 5 * time.Second

var (
	ErrUnknownSlot    = errors.New("unknown slot")
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid action payload")
)

// One-shot action names accepted by TriggerAction.
const (
	ActionCreateWorkflow         = "create_workflow"
	ActionRefreshTrends          = "refresh_trends"
	ActionUpdateWorkflowStatus   = "update_workflow_status"
	ActionCreateTemplateWorkflow = "create_template_workflow"
)

// WorkflowStatusUpdate is the payload for ActionUpdateWorkflowStatus.
type WorkflowStatusUpdate struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Options controls which optional slots the orchestrator registers.
type Options struct {
	RevenueSlots bool
	ProductsSlot bool
}

// slotFetch fetches one slot's value. On success it returns a closure
// that writes the fetched value into the snapshot; the write is deferred
// so a failed fetch can never touch state.
type slotFetch func(ctx context.Context) (func(*domain.Snapshot), error)

// Orchestrator coordinates fetching of the backend's independent
// resources into named slots. A failed fetch leaves its slot at the
// prior value; the next poll tick is the implicit retry. Overlapping
// fetches to the same slot are last-write-wins by design.
type Orchestrator struct {
	backend domain.Backend
	metrics *Metrics
	logger  *zap.Logger

	interval time.Duration
	slots    map[string]slotFetch
	polled   []string

	mu   sync.RWMutex
	snap domain.Snapshot
	subs []chan struct{}

	loaded     chan struct{}
	loadedOnce sync.Once

	// rootCtx bounds every polled fetch to the orchestrator's lifetime;
	// StopPolling cancels it so in-flight requests are aborted on teardown.
	rootCtx  context.Context
	cancel   context.CancelFunc
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	polling  atomic.Bool
}

func NewOrchestrator(b domain.Backend, m *Metrics, logger *zap.Logger, opts Options) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		backend:  b,
		metrics:  m,
		logger:   logger,
		interval: defaultPollInterval,
		slots:    make(map[string]slotFetch),
		snap:     domain.Snapshot{Slots: make(map[string]domain.SlotMeta)},
		loaded:   make(chan struct{}),
		rootCtx:  ctx,
		cancel:   cancel,
		stopCh:   make(chan struct{}),
	}

	o.register(domain.SlotAgentStatus, func(ctx context.Context) (func(*domain.Snapshot), error) {
		status, err := b.AgentStatus(ctx)
		if err != nil {
			return nil, err
		}
		return func(s *domain.Snapshot) { s.AgentStatus = status }, nil
	})
	o.register(domain.SlotWorkflows, func(ctx context.Context) (func(*domain.Snapshot), error) {
		workflows, err := b.Workflows(ctx)
		if err != nil {
			return nil, err
		}
		return func(s *domain.Snapshot) { s.Workflows = workflows }, nil
	})
	o.register(domain.SlotTrends, func(ctx context.Context) (func(*domain.Snapshot), error) {
		trends, err := b.Trends(ctx)
		if err != nil {
			return nil, err
		}
		return func(s *domain.Snapshot) { s.Trends = trends }, nil
	})
	o.register(domain.SlotDashboardStats, func(ctx context.Context) (func(*domain.Snapshot), error) {
		stats, err := b.DashboardStats(ctx)
		if err != nil {
			return nil, err
		}
		return func(s *domain.Snapshot) { s.DashboardStats = stats }, nil
	})
	o.register(domain.SlotAgentLogs, func(ctx context.Context) (func(*domain.Snapshot), error) {
		logs, err := b.AgentLogs(ctx)
		if err != nil {
			return nil, err
		}
		return func(s *domain.Snapshot) { s.AgentLogs = logs }, nil
	})

	if opts.RevenueSlots {
		o.register(domain.SlotRevenueStats, func(ctx context.Context) (func(*domain.Snapshot), error) {
			stats, err := b.RevenueStats(ctx)
			if err != nil {
				return nil, err
			}
			return func(s *domain.Snapshot) { s.RevenueStats = stats }, nil
		})
		o.register(domain.SlotRevenueOpportunities, func(ctx context.Context) (func(*domain.Snapshot), error) {
			opportunities, err := b.RevenueOpportunities(ctx)
			if err != nil {
				return nil, err
			}
			return func(s *domain.Snapshot) { s.RevenueOpportunities = opportunities }, nil
		})
		o.register(domain.SlotNextActions, func(ctx context.Context) (func(*domain.Snapshot), error) {
			actions, err := b.NextActions(ctx)
			if err != nil {
				return nil, err
			}
			return func(s *domain.Snapshot) { s.NextActions = actions }, nil
		})
	}
	if opts.ProductsSlot {
		o.register(domain.SlotProducts, func(ctx context.Context) (func(*domain.Snapshot), error) {
			products, err := b.Products(ctx)
			if err != nil {
				return nil, err
			}
			return func(s *domain.Snapshot) { s.Products = products }, nil
		})
	}

	// The polled subset excludes resources refreshed only on load or on
	// explicit user action: trends, revenue opportunities, products.
	o.polled = []string{
		domain.SlotAgentStatus,
		domain.SlotWorkflows,
		domain.SlotDashboardStats,
		domain.SlotAgentLogs,
	}
	if opts.RevenueSlots {
		o.polled = append(o.polled, domain.SlotRevenueStats, domain.SlotNextActions)
	}

	return o
}

func (o *Orchestrator) register(name string, fetch slotFetch) {
	o.slots[name] = fetch
}

// SetInterval overrides the polling interval. Call before StartPolling.
func (o *Orchestrator) SetInterval(d time.Duration) {
	o.interval = d
}

// SlotNames returns every registered slot name, sorted.
func (o *Orchestrator) SlotNames() []string {
	names := slices.Collect(maps.Keys(o.slots))
	slices.Sort(names)
	return names
}

// PolledSlots returns the subset refreshed on each tick.
func (o *Orchestrator) PolledSlots() []string {
	return slices.Clone(o.polled)
}

// LoadAll fetches every registered slot concurrently and returns once
// all fetches have settled. A failure in one slot does not prevent the
// others from completing. The initial-load signal fires exactly once,
// on the first call, after every fetch has settled.
func (o *Orchestrator) LoadAll(ctx context.Context) {
	var wg sync.WaitGroup
	for name := range o.slots {
		wg.Add(1)
		go func(slot string) {
			defer wg.Done()
			_ = o.RefreshSlot(ctx, slot)
		}(name)
	}
	wg.Wait()

	o.loadedOnce.Do(func() { close(o.loaded) })
}

// Loading reports whether the initial load is still in progress.
func (o *Orchestrator) Loading() bool {
	select {
	case <-o.loaded:
		return false
	default:
		return true
	}
}

// InitialLoad returns a channel closed when the first LoadAll settles.
func (o *Orchestrator) InitialLoad() <-chan struct{} {
	return o.loaded
}

// RefreshSlot fetches a single named slot. On success the slot value is
// replaced and its version bumped; on failure the prior value is left
// untouched and the error is recorded as the slot's diagnostic. No retry
// is attempted. The returned error is informational only; it never
// carries fatal weight for the caller.
func (o *Orchestrator) RefreshSlot(ctx context.Context, name string) error {
	fetch, ok := o.slots[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, name)
	}

	start := time.Now()
	apply, err := fetch(ctx)
	o.metrics.SlotRefreshDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		o.metrics.SlotRefreshTotal.WithLabelValues(name, "error").Inc()
		o.logger.Warn("slot refresh failed",
			zap.String("slot", name),
			zap.Error(err))

		o.mu.Lock()
		meta := o.snap.Slots[name]
		meta.LastError = err.Error()
		o.snap.Slots[name] = meta
		o.mu.Unlock()
		return err
	}

	o.mu.Lock()
	// Torn down while this fetch was in flight: drop the write so no
	// slot mutation happens after StopPolling has returned.
	if o.rootCtx.Err() != nil {
		o.mu.Unlock()
		return o.rootCtx.Err()
	}
	apply(&o.snap)
	now := time.Now()
	meta := o.snap.Slots[name]
	meta.Version++
	meta.LastSyncedAt = &now
	meta.LastError = ""
	o.snap.Slots[name] = meta
	o.mu.Unlock()

	o.metrics.SlotRefreshTotal.WithLabelValues(name, "success").Inc()
	o.notify()
	return nil
}

// StartPolling refreshes the polled subset on a fixed interval in a
// background goroutine. Ticks do not wait for each other: each slot
// refresh runs in its own goroutine, so a slow fetch never delays the
// next tick. Overlapping fetches to one slot resolve last-write-wins.
func (o *Orchestrator) StartPolling() {
	if o.polling.Swap(true) {
		return
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(o.interval)
		defer ticker.Stop()

		o.logger.Info("polling started",
			zap.Duration("interval", o.interval),
			zap.Strings("slots", o.polled))

		for {
			select {
			case <-ticker.C:
				o.metrics.PollTicksTotal.Inc()
				for _, name := range o.polled {
					o.wg.Add(1)
					go func(slot string) {
						defer o.wg.Done()
						_ = o.RefreshSlot(o.rootCtx, slot)
					}(name)
				}
			case <-o.stopCh:
				o.logger.Info("polling stopped")
				return
			}
		}
	}()
}

// StopPolling cancels the polling timer and aborts in-flight fetches.
// Idempotent; safe to call whether or not polling is active. When it
// returns, no further slot writes will occur.
func (o *Orchestrator) StopPolling() {
	o.stopOnce.Do(func() {
		close(o.stopCh)
		o.cancel()
	})
	o.wg.Wait()
}

// TriggerAction performs a one-shot side-effecting backend call and, on
// success, synchronously re-refreshes the slots the mutation affects so
// callers observe the new state by the time this returns. On failure no
// slot is touched. Returns the backend-assigned id where one exists.
func (o *Orchestrator) TriggerAction(ctx context.Context, action string, payload any) (string, error) {
	var (
		id      string
		refresh []string
		err     error
	)

	switch action {
	case ActionCreateWorkflow:
		req, ok := payload.(*domain.WorkflowCreate)
		if !ok {
			return "", fmt.Errorf("%w: %s wants *domain.WorkflowCreate", ErrInvalidPayload, action)
		}
		id, err = o.backend.CreateWorkflow(ctx, req)
		refresh = []string{domain.SlotWorkflows, domain.SlotDashboardStats}

	case ActionRefreshTrends:
		_, err = o.backend.RefreshTrends(ctx)
		refresh = []string{domain.SlotTrends}

	case ActionUpdateWorkflowStatus:
		update, ok := payload.(*WorkflowStatusUpdate)
		if !ok {
			return "", fmt.Errorf("%w: %s wants *WorkflowStatusUpdate", ErrInvalidPayload, action)
		}
		err = o.backend.UpdateWorkflowStatus(ctx, update.ID, update.Status)
		id = update.ID
		refresh = []string{domain.SlotWorkflows, domain.SlotDashboardStats}

	case ActionCreateTemplateWorkflow:
		opportunity, ok := payload.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s wants map[string]any", ErrInvalidPayload, action)
		}
		id, err = o.backend.CreateTemplateWorkflow(ctx, opportunity)
		refresh = []string{domain.SlotWorkflows, domain.SlotRevenueOpportunities}

	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil {
		o.metrics.ActionsTotal.WithLabelValues(action, "error").Inc()
		o.logger.Warn("action failed",
			zap.String("action", action),
			zap.Error(err))
		return "", err
	}

	o.metrics.ActionsTotal.WithLabelValues(action, "success").Inc()
	for _, slot := range refresh {
		if _, ok := o.slots[slot]; !ok {
			continue
		}
		_ = o.RefreshSlot(ctx, slot)
	}
	return id, nil
}

// Snapshot returns a copy of the current state. Slices and the metadata
// map are cloned so readers never alias orchestrator-owned memory.
func (o *Orchestrator) Snapshot() domain.Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	snap := o.snap
	if snap.AgentStatus != nil {
		v := *snap.AgentStatus
		snap.AgentStatus = &v
	}
	if snap.DashboardStats != nil {
		v := *snap.DashboardStats
		snap.DashboardStats = &v
	}
	if snap.RevenueStats != nil {
		v := *snap.RevenueStats
		snap.RevenueStats = &v
	}
	snap.Workflows = slices.Clone(snap.Workflows)
	snap.Trends = slices.Clone(snap.Trends)
	snap.AgentLogs = slices.Clone(snap.AgentLogs)
	snap.RevenueOpportunities = slices.Clone(snap.RevenueOpportunities)
	snap.NextActions = slices.Clone(snap.NextActions)
	snap.Products = slices.Clone(snap.Products)
	snap.Slots = maps.Clone(snap.Slots)
	snap.TakenAt = time.Now()
	return snap
}

// SlotMeta returns the sync metadata for one slot.
func (o *Orchestrator) SlotMeta(name string) (domain.SlotMeta, bool) {
	if _, ok := o.slots[name]; !ok {
		return domain.SlotMeta{}, false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snap.Slots[name], true
}

// Subscribe returns a channel that receives a coalesced signal after
// each successful slot write. The channel is never closed; slow readers
// miss intermediate signals, not state.
func (o *Orchestrator) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	o.mu.Lock()
	o.subs = append(o.subs, ch)
	o.mu.Unlock()
	return ch
}

func (o *Orchestrator) notify() {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, ch := range o.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
