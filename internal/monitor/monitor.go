package monitor

import (
	"context"
	"sync"
	"time"

	"gsmonitor/internal/logging"
	"gsmonitor/internal/models"
	"gsmonitor/internal/settings"
)

// maxHistory bounds the in-memory cycle history kept for the status API.
const maxHistory = 512

// Prober issues one reachability check.
type Prober interface {
	Check(ctx context.Context, endpoint string) models.ProbeResult
}

// Restorer runs one bounded restoration episode.
type Restorer interface {
	RestoreAccess(maxRetries int) bool
}

// Maintainer performs one maintenance pass.
type Maintainer interface {
	Run(s settings.Settings) error
}

// Monitor drives the probe/restore/maintain cycle on a fixed interval and
// keeps a bounded history of cycle snapshots for the status API.
type Monitor struct {
	settings   settings.Settings
	prober     Prober
	restorer   Restorer
	maintainer Maintainer
	logger     logging.Logger

	mu      sync.RWMutex
	latest  *models.CycleSnapshot
	history []models.CycleSnapshot

	stopCh chan struct{}
	doneCh chan struct{}
}

// New composes the monitor from its collaborators.
func New(s settings.Settings, p Prober, r Restorer, m Maintainer, logger logging.Logger) *Monitor {
	return &Monitor{
		settings:   s,
		prober:     p,
		restorer:   r,
		maintainer: m,
		logger:     logger,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Settings returns the record the monitor was started with.
func (m *Monitor) Settings() settings.Settings {
	return m.settings
}

// RunOnce executes a single cycle: probe, restoration on probe failure, then
// maintenance regardless of the restoration outcome. Probe and restoration
// failures stay inside the cycle; only a maintenance error escapes.
func (m *Monitor) RunOnce(ctx context.Context) (models.CycleSnapshot, error) {
	snapshot := models.CycleSnapshot{
		Probe: m.prober.Check(ctx, m.settings.GSocketEndpoint),
	}

	if !snapshot.Probe.OK {
		m.logger.Warnf("Attempting to restore gsocket access...")
		restored := m.restorer.RestoreAccess(m.settings.MaxRetries)
		snapshot.Restored = &restored
	}

	if err := m.maintainer.Run(m.settings); err != nil {
		return snapshot, err
	}
	snapshot.MaintenanceRan = true

	m.record(snapshot)
	return snapshot, nil
}

// Run blocks, repeating cycles until Stop is called. The interval sleep
// happens after each cycle, so a slow cycle never eats into the documented
// sleep. A zero or negative interval makes the loop spin without sleeping.
func (m *Monitor) Run() error {
	defer close(m.doneCh)

	m.logger.Infof("Starting GSocket Monitor Application")

	interval := time.Duration(m.settings.MonitorInterval) * time.Second
	for {
		if _, err := m.RunOnce(context.Background()); err != nil {
			return err
		}

		m.logger.Infof("Sleeping for %d seconds", m.settings.MonitorInterval)
		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-m.stopCh:
			timer.Stop()
			return nil
		}
	}
}

// Stop requests loop termination and waits until Run has returned.
func (m *Monitor) Stop() {
	select {
	case <-m.doneCh:
		return
	default:
	}
	close(m.stopCh)
	<-m.doneCh
}

// Latest returns the most recent cycle snapshot.
func (m *Monitor) Latest() (models.CycleSnapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.latest == nil {
		return models.CycleSnapshot{}, false
	}
	return *m.latest, true
}

// HistoryN returns up to limit recent snapshots, oldest first.
func (m *Monitor) HistoryN(limit int) []models.CycleSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.history) == 0 {
		return nil
	}
	start := 0
	if limit > 0 && len(m.history) > limit {
		start = len(m.history) - limit
	}
	out := make([]models.CycleSnapshot, len(m.history)-start)
	copy(out, m.history[start:])
	return out
}

func (m *Monitor) record(snapshot models.CycleSnapshot) {
	m.mu.Lock()
	m.latest = &snapshot
	m.history = append(m.history, snapshot)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.mu.Unlock()
}
