package service

import (
	"context"
	"time"

	"github.com/brunovidal/funnel/internal/alert"
	"github.com/brunovidal/funnel/internal/domain"
	"github.com/shopspring/decimal"
)

// ChangeFunc is invoked after every successful write with the affected
// collection and tenant, feeding the host's re-evaluation loop. Services
// tolerate a nil ChangeFunc.
type ChangeFunc func(collection, tenantID string)

// ConfirmWinResult is the outcome of closing a budget: the invoiced budget
// and, for partial wins, the Lost sibling carrying the remainder.
type ConfirmWinResult struct {
	Budget      *domain.Budget
	LostSibling *domain.Budget
}

type BudgetService interface {
	Create(ctx context.Context, b *domain.Budget) error
	GetByID(ctx context.Context, id string) (*domain.Budget, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Budget, error)
	RecordFollowUp(ctx context.Context, budgetID, note string, mediaRef *string, tag domain.FollowUpTag, next *time.Time) (*domain.Budget, error)
	ChangeStatus(ctx context.Context, budgetID string, status domain.BudgetStatus) (*domain.Budget, error)
	MarkLost(ctx context.Context, budgetID string, reason domain.LostReason, notes string) (*domain.Budget, error)
	ConfirmWin(ctx context.Context, budgetID string, closing decimal.Decimal) (*ConfirmWinResult, error)
}

type ReminderService interface {
	Create(ctx context.Context, r *domain.Reminder) error
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Reminder, error)
	Toggle(ctx context.Context, id string) (*domain.Reminder, error)
	Dismiss(ctx context.Context, id string) (*domain.Reminder, error)
	Delete(ctx context.Context, id string) error
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ProspectService interface {
	Create(ctx context.Context, p *domain.Prospect) error
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Prospect, error)
	// Convert consumes the prospect and creates a budget in sent status as
	// one transaction; a failed conversion leaves the prospect intact.
	Convert(ctx context.Context, prospectID, title string, value decimal.Decimal) (*domain.Budget, error)
	Delete(ctx context.Context, id string) error
}

// AlertService loads the current record set and runs the pure derivations
// against an explicit now, so the same call is usable from the engine loop,
// the CLI and tests.
type AlertService interface {
	Notifications(ctx context.Context, tenantID string, now time.Time) ([]alert.Notification, error)
	EvaluateReminders(ctx context.Context, tenantID string, now time.Time) (alert.ReminderEvaluation, error)
}
