package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brunovidal/funnel/internal/db"
	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	budgets repository.BudgetRepo
	uow     db.UnitOfWork
	amounts *domain.AmountFormatter
	notify  ChangeFunc
}

func NewBudgetService(budgets repository.BudgetRepo, uow db.UnitOfWork, amounts *domain.AmountFormatter, notify ChangeFunc) BudgetService {
	return &budgetService{budgets: budgets, uow: uow, amounts: amounts, notify: notify}
}

func (s *budgetService) emit(tenantID string) {
	if s.notify != nil {
		s.notify("budgets", tenantID)
	}
}

func (s *budgetService) Create(ctx context.Context, b *domain.Budget) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Status == "" {
		b.Status = domain.BudgetSent
	}
	if b.DateSent.IsZero() {
		b.DateSent = now
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.budgets.Create(ctx, b); err != nil {
		return err
	}
	s.emit(b.TenantID)
	return nil
}

func (s *budgetService) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	return s.budgets.GetByID(ctx, id)
}

func (s *budgetService) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Budget, error) {
	return s.budgets.ListByTenant(ctx, tenantID)
}

func (s *budgetService) RecordFollowUp(ctx context.Context, budgetID, note string, mediaRef *string, tag domain.FollowUpTag, next *time.Time) (*domain.Budget, error) {
	var updated *domain.Budget
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		budgets := repository.NewSQLiteBudgetRepo(tx)

		b, err := budgets.GetByID(ctx, budgetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		f := domain.FollowUp{
			ID:        uuid.New().String(),
			Note:      note,
			MediaRef:  mediaRef,
			Tag:       tag,
			CreatedAt: now,
		}
		if err := b.AppendFollowUp(f, next, now); err != nil {
			return err
		}

		if err := budgets.AppendFollowUp(ctx, &b.FollowUps[len(b.FollowUps)-1]); err != nil {
			return err
		}
		if err := budgets.Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(updated.TenantID)
	return updated, nil
}

func (s *budgetService) ChangeStatus(ctx context.Context, budgetID string, status domain.BudgetStatus) (*domain.Budget, error) {
	b, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if err := b.TransitionTo(status, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.budgets.Update(ctx, b); err != nil {
		return nil, err
	}
	s.emit(b.TenantID)
	return b, nil
}

func (s *budgetService) MarkLost(ctx context.Context, budgetID string, reason domain.LostReason, notes string) (*domain.Budget, error) {
	b, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if err := b.MarkLost(reason, notes, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.budgets.Update(ctx, b); err != nil {
		return nil, err
	}
	s.emit(b.TenantID)
	return b, nil
}

// ConfirmWin closes a budget for closing. A partial win writes two records,
// the updated original and the new Lost sibling, inside one transaction; a
// failure after validation rolls back wholesale and is reported as
// ErrSplitFailed so callers can distinguish it from rejected input.
func (s *budgetService) ConfirmWin(ctx context.Context, budgetID string, closing decimal.Decimal) (*ConfirmWinResult, error) {
	var result *ConfirmWinResult
	split := false

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		budgets := repository.NewSQLiteBudgetRepo(tx)

		b, err := budgets.GetByID(ctx, budgetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		proposed := b.Value
		sibling, err := b.ConfirmWin(closing, now)
		if err != nil {
			return err
		}

		if sibling != nil {
			split = true
			sibling.ID = uuid.New().String()
			if err := budgets.Create(ctx, sibling); err != nil {
				return err
			}

			f := domain.FollowUp{
				ID:        uuid.New().String(),
				BudgetID:  sibling.ID,
				Note:      s.splitNarration(closing, proposed.Sub(closing)),
				CreatedAt: now,
			}
			if err := budgets.AppendFollowUp(ctx, &f); err != nil {
				return err
			}
			sibling.FollowUps = append(sibling.FollowUps, f)
		}

		if err := budgets.Update(ctx, b); err != nil {
			return err
		}
		result = &ConfirmWinResult{Budget: b, LostSibling: sibling}
		return nil
	})
	if err != nil {
		if split && !errors.Is(err, domain.ErrValidation) && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("confirming win for budget %s: %w", budgetID, errors.Join(ErrSplitFailed, err))
		}
		return nil, err
	}
	s.emit(result.Budget.TenantID)
	return result, nil
}

func (s *budgetService) splitNarration(closing, lost decimal.Decimal) string {
	return fmt.Sprintf("Partial win: closed for %s, remainder %s recorded as lost.",
		s.amounts.Format(closing), s.amounts.Format(lost))
}
