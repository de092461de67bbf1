package domain

import (
	"fmt"
	"time"
)

// Client is the thin locally-stored view of a customer. The pipeline core
// only needs it to resolve names on notifications and budget listings.
type Client struct {
	ID       string
	TenantID string

	Name    string
	Company string
	Email   string
	Phone   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("client name is required: %w", ErrValidation)
	}
	return nil
}
