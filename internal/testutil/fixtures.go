package testutil

import (
	"time"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TestTenant = "tenant-test"
	TestOwner  = "owner-test"
)

// Budget options
type BudgetOption func(*domain.Budget)

func WithValue(v int64) BudgetOption {
	return func(b *domain.Budget) {
		b.Value = decimal.NewFromInt(v)
	}
}

func WithStatus(s domain.BudgetStatus) BudgetOption {
	return func(b *domain.Budget) {
		b.Status = s
	}
}

func WithNextFollowUp(d time.Time) BudgetOption {
	return func(b *domain.Budget) {
		b.NextFollowUp = &d
	}
}

func WithClientID(id string) BudgetOption {
	return func(b *domain.Budget) {
		b.ClientID = id
	}
}

func WithBudgetTenant(id string) BudgetOption {
	return func(b *domain.Budget) {
		b.TenantID = id
	}
}

func WithObservations(o string) BudgetOption {
	return func(b *domain.Budget) {
		b.Observations = o
	}
}

func NewTestBudget(title string, opts ...BudgetOption) *domain.Budget {
	now := time.Now().UTC().Truncate(time.Second)
	b := &domain.Budget{
		ID:        uuid.New().String(),
		TenantID:  TestTenant,
		OwnerID:   TestOwner,
		ClientID:  uuid.New().String(),
		Title:     title,
		Value:     decimal.NewFromInt(1000),
		Status:    domain.BudgetSent,
		DateSent:  now.AddDate(0, 0, -7),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reminder options
type ReminderOption func(*domain.Reminder)

func WithRemindAt(d time.Time) ReminderOption {
	return func(r *domain.Reminder) {
		r.RemindAt = d
	}
}

func WithCompleted() ReminderOption {
	return func(r *domain.Reminder) {
		r.Completed = true
	}
}

func WithDismissed() ReminderOption {
	return func(r *domain.Reminder) {
		r.Dismissed = true
	}
}

func NewTestReminder(title string, opts ...ReminderOption) *domain.Reminder {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.Reminder{
		ID:        uuid.New().String(),
		TenantID:  TestTenant,
		OwnerID:   TestOwner,
		Title:     title,
		RemindAt:  now.Add(24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestClient(name string) *domain.Client {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Client{
		ID:        uuid.New().String(),
		TenantID:  TestTenant,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestProspect(name string) *domain.Prospect {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Prospect{
		ID:        uuid.New().String(),
		TenantID:  TestTenant,
		OwnerID:   TestOwner,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
