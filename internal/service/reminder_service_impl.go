package service

import (
	"context"
	"time"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/google/uuid"
)

type reminderService struct {
	reminders repository.ReminderRepo
	notify    ChangeFunc
}

func NewReminderService(reminders repository.ReminderRepo, notify ChangeFunc) ReminderService {
	return &reminderService{reminders: reminders, notify: notify}
}

func (s *reminderService) emit(tenantID string) {
	if s.notify != nil {
		s.notify("reminders", tenantID)
	}
}

func (s *reminderService) Create(ctx context.Context, r *domain.Reminder) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Completed = false
	r.Dismissed = false
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return err
	}
	s.emit(r.TenantID)
	return nil
}

func (s *reminderService) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Reminder, error) {
	return s.reminders.ListByTenant(ctx, tenantID)
}

func (s *reminderService) Toggle(ctx context.Context, id string) (*domain.Reminder, error) {
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.ToggleCompleted(time.Now().UTC())
	if err := s.reminders.Update(ctx, r); err != nil {
		return nil, err
	}
	s.emit(r.TenantID)
	return r, nil
}

func (s *reminderService) Dismiss(ctx context.Context, id string) (*domain.Reminder, error) {
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Dismiss(time.Now().UTC())
	if err := s.reminders.Update(ctx, r); err != nil {
		return nil, err
	}
	s.emit(r.TenantID)
	return r, nil
}

func (s *reminderService) Delete(ctx context.Context, id string) error {
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reminders.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(r.TenantID)
	return nil
}
