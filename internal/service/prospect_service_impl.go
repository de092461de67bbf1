package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brunovidal/funnel/internal/db"
	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type prospectService struct {
	prospects repository.ProspectRepo
	uow       db.UnitOfWork
	notify    ChangeFunc
}

func NewProspectService(prospects repository.ProspectRepo, uow db.UnitOfWork, notify ChangeFunc) ProspectService {
	return &prospectService{prospects: prospects, uow: uow, notify: notify}
}

func (s *prospectService) emit(collection, tenantID string) {
	if s.notify != nil {
		s.notify(collection, tenantID)
	}
}

func (s *prospectService) Create(ctx context.Context, p *domain.Prospect) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.prospects.Create(ctx, p); err != nil {
		return err
	}
	s.emit("prospects", p.TenantID)
	return nil
}

func (s *prospectService) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Prospect, error) {
	return s.prospects.ListByTenant(ctx, tenantID)
}

// Convert consumes the prospect and creates the budget in one transaction.
// Deleting the prospect only after the budget insert succeeds means an
// abandoned or failed conversion keeps the prospect.
func (s *prospectService) Convert(ctx context.Context, prospectID, title string, value decimal.Decimal) (*domain.Budget, error) {
	if !value.IsPositive() {
		return nil, fmt.Errorf("budget value must be positive, got %s: %w", value, domain.ErrValidation)
	}

	var budget *domain.Budget
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		prospects := repository.NewSQLiteProspectRepo(tx)
		budgets := repository.NewSQLiteBudgetRepo(tx)

		p, err := prospects.GetByID(ctx, prospectID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		clientID := ""
		if p.ClientID != nil {
			clientID = *p.ClientID
		}
		b := &domain.Budget{
			ID:        uuid.New().String(),
			TenantID:  p.TenantID,
			OwnerID:   p.OwnerID,
			ClientID:  clientID,
			Title:     title,
			Value:     value,
			Status:    domain.BudgetSent,
			DateSent:  now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if b.Title == "" {
			b.Title = p.Name
		}
		if err := b.Validate(); err != nil {
			return err
		}
		if err := budgets.Create(ctx, b); err != nil {
			return err
		}
		if err := prospects.Delete(ctx, prospectID); err != nil {
			return err
		}
		budget = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit("prospects", budget.TenantID)
	s.emit("budgets", budget.TenantID)
	return budget, nil
}

func (s *prospectService) Delete(ctx context.Context, id string) error {
	p, err := s.prospects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.prospects.Delete(ctx, id); err != nil {
		return err
	}
	s.emit("prospects", p.TenantID)
	return nil
}
