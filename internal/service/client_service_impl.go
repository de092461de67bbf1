package service

import (
	"context"
	"time"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/google/uuid"
)

type clientService struct {
	clients repository.ClientRepo
	notify  ChangeFunc
}

func NewClientService(clients repository.ClientRepo, notify ChangeFunc) ClientService {
	return &clientService{clients: clients, notify: notify}
}

func (s *clientService) emit(tenantID string) {
	if s.notify != nil {
		s.notify("clients", tenantID)
	}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return err
	}
	s.emit(c.TenantID)
	return nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Client, error) {
	return s.clients.ListByTenant(ctx, tenantID)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.clients.Update(ctx, c); err != nil {
		return err
	}
	s.emit(c.TenantID)
	return nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(c.TenantID)
	return nil
}
