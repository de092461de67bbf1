package repository

import (
	"context"

	"github.com/brunovidal/funnel/internal/domain"
)

// BudgetRepo persists budgets and their append-only follow-up log. Budgets
// are never hard-deleted by the pipeline core.
type BudgetRepo interface {
	Create(ctx context.Context, b *domain.Budget) error
	GetByID(ctx context.Context, id string) (*domain.Budget, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Budget, error)
	Update(ctx context.Context, b *domain.Budget) error
	AppendFollowUp(ctx context.Context, f *domain.FollowUp) error
	ListFollowUps(ctx context.Context, budgetID string) ([]domain.FollowUp, error)
}

type ReminderRepo interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Reminder, error)
	Update(ctx context.Context, r *domain.Reminder) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Client, error)
	// NamesByTenant returns id -> name for notification derivation.
	NamesByTenant(ctx context.Context, tenantID string) (map[string]string, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ProspectRepo interface {
	Create(ctx context.Context, p *domain.Prospect) error
	GetByID(ctx context.Context, id string) (*domain.Prospect, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Prospect, error)
	Update(ctx context.Context, p *domain.Prospect) error
	Delete(ctx context.Context, id string) error
}
