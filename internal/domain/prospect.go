package domain

import (
	"fmt"
	"time"
)

// Prospect is a funnel lead that has not yet received a quote. Conversion
// consumes the prospect and produces a budget in sent status.
type Prospect struct {
	ID       string
	TenantID string
	OwnerID  string

	Name     string
	ClientID *string
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Prospect) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("prospect name is required: %w", ErrValidation)
	}
	return nil
}
