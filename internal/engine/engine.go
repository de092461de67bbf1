// Package engine keeps a current view of derived alerts. It re-evaluates on a
// cron schedule and immediately after any write, and serves the latest
// snapshot to the CLI without touching the store on the read path.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/brunovidal/funnel/internal/alert"
	"github.com/brunovidal/funnel/internal/service"
)

// Snapshot is one complete evaluation pass: the derived notifications and the
// reminder view at GeneratedAt.
type Snapshot struct {
	Notifications []alert.Notification
	Reminders     alert.ReminderEvaluation
	GeneratedAt   time.Time
}

type Engine struct {
	alerts   service.AlertService
	bus      *Bus
	tenantID string
	log      *logrus.Logger

	cronEngine *cron.Cron
	cancel     context.CancelFunc
	done       chan struct{}

	mu       sync.RWMutex
	snapshot Snapshot
}

func New(alerts service.AlertService, bus *Bus, tenantID string, log *logrus.Logger) *Engine {
	return &Engine{
		alerts:   alerts,
		bus:      bus,
		tenantID: tenantID,
		log:      log,
	}
}

// Start performs an initial evaluation, then keeps the snapshot fresh from
// two triggers: the cron spec and change events from the bus.
func (e *Engine) Start(ctx context.Context, cronSpec string) error {
	if err := e.Refresh(ctx, time.Now().UTC()); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})

	e.cronEngine = cron.New()
	_, err := e.cronEngine.AddFunc(cronSpec, func() {
		if err := e.Refresh(runCtx, time.Now().UTC()); err != nil {
			e.log.WithError(err).Error("scheduled re-evaluation failed")
		}
	})
	if err != nil {
		cancel()
		return err
	}
	e.cronEngine.Start()

	events := e.bus.Subscribe()
	go func() {
		defer close(e.done)
		for {
			select {
			case <-runCtx.Done():
				return
			case ev := <-events:
				e.log.WithFields(logrus.Fields{
					"collection": ev.Collection,
					"tenant":     ev.TenantID,
				}).Debug("change event, re-evaluating")
				if err := e.Refresh(runCtx, time.Now().UTC()); err != nil {
					e.log.WithError(err).Error("event-driven re-evaluation failed")
				}
			}
		}
	}()

	e.log.WithField("cron", cronSpec).Info("alert engine started")
	return nil
}

func (e *Engine) Stop() {
	if e.cancel == nil {
		return
	}
	stopCtx := e.cronEngine.Stop()
	<-stopCtx.Done()
	e.cancel()
	<-e.done
	e.log.Info("alert engine stopped")
}

// Refresh runs one evaluation pass and replaces the snapshot.
func (e *Engine) Refresh(ctx context.Context, now time.Time) error {
	notifications, err := e.alerts.Notifications(ctx, e.tenantID, now)
	if err != nil {
		return err
	}
	reminders, err := e.alerts.EvaluateReminders(ctx, e.tenantID, now)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.snapshot = Snapshot{
		Notifications: notifications,
		Reminders:     reminders,
		GeneratedAt:   now,
	}
	e.mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"notifications": len(notifications),
		"reminders":     len(reminders.Sorted),
	}).Debug("snapshot rebuilt")
	return nil
}

// Snapshot returns the latest evaluation. It never blocks on the store.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}
