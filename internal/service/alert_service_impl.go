package service

import (
	"context"
	"sync"
	"time"

	"github.com/brunovidal/funnel/internal/alert"
	"github.com/brunovidal/funnel/internal/repository"
)

type alertService struct {
	budgets   repository.BudgetRepo
	clients   repository.ClientRepo
	reminders repository.ReminderRepo

	mu   sync.Mutex
	slot alert.ReminderSlot
}

func NewAlertService(budgets repository.BudgetRepo, clients repository.ClientRepo, reminders repository.ReminderRepo) AlertService {
	return &alertService{budgets: budgets, clients: clients, reminders: reminders}
}

// Notifications rebuilds the notification set from scratch. Nothing is
// persisted; consecutive calls over the same records yield the same result.
func (s *alertService) Notifications(ctx context.Context, tenantID string, now time.Time) ([]alert.Notification, error) {
	budgets, err := s.budgets.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	names, err := s.clients.NamesByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return alert.Derive(budgets, names, now), nil
}

// EvaluateReminders runs a reminder evaluation pass against the stored set.
// The surfaced-reminder slot is held across calls, so the selection policy
// from alert.ReminderSlot applies between passes.
func (s *alertService) EvaluateReminders(ctx context.Context, tenantID string, now time.Time) (alert.ReminderEvaluation, error) {
	reminders, err := s.reminders.ListByTenant(ctx, tenantID)
	if err != nil {
		return alert.ReminderEvaluation{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot.Evaluate(reminders, now), nil
}
