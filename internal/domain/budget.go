package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PartialLossTitlePrefix marks the Lost sibling created by a partial win.
const PartialLossTitlePrefix = "[Partial loss] "

// Budget is a sales quote tracked through the win/loss pipeline.
type Budget struct {
	ID       string
	TenantID string
	OwnerID  string
	ClientID string

	// ContactID is optional; nil means no specific contact at the client.
	ContactID *string

	Title        string
	Value        decimal.Decimal
	Status       BudgetStatus
	DateSent     time.Time
	NextFollowUp *time.Time
	Observations string

	// Populated only when the budget is lost.
	LostReason LostReason
	LostNotes  string

	FollowUps []FollowUp

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the invariants a budget must satisfy at creation time.
func (b *Budget) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("budget title is required: %w", ErrValidation)
	}
	if b.ClientID == "" {
		return fmt.Errorf("budget client is required: %w", ErrValidation)
	}
	if !b.Value.IsPositive() {
		return fmt.Errorf("budget value must be positive, got %s: %w", b.Value, ErrValidation)
	}
	if !ValidBudgetStatuses[b.Status] {
		return fmt.Errorf("unknown budget status %q: %w", b.Status, ErrValidation)
	}
	return nil
}

// AppendFollowUp records a contact-log entry, moves the budget to
// following_up and replaces the scheduled next follow-up date (nil clears it).
// Valid from any non-terminal status. The entry must carry a note or an
// attachment.
func (b *Budget) AppendFollowUp(f FollowUp, next *time.Time, now time.Time) error {
	if b.Status.IsTerminal() {
		return fmt.Errorf("cannot record follow-up on %s budget: %w", b.Status, ErrValidation)
	}
	if !f.HasContent() {
		return fmt.Errorf("follow-up requires a note or attachment: %w", ErrValidation)
	}
	f.BudgetID = b.ID
	b.FollowUps = append(b.FollowUps, f)
	b.Status = BudgetFollowingUp
	b.NextFollowUp = next
	b.UpdatedAt = now
	return nil
}

// TransitionTo applies a direct status override. Transitioning to the current
// status is a no-op. Moving into a terminal status clears the scheduled
// follow-up. The switch is exhaustive over target statuses so a new status
// forces this function to be revisited.
func (b *Budget) TransitionTo(status BudgetStatus, now time.Time) error {
	if status == b.Status {
		return nil
	}
	if b.Status.IsTerminal() {
		return fmt.Errorf("budget is %s and cannot change status: %w", b.Status, ErrValidation)
	}

	switch status {
	case BudgetSent, BudgetFollowingUp, BudgetOrderPlaced, BudgetOnHold:
		b.Status = status
	case BudgetLost:
		b.Status = BudgetLost
		b.NextFollowUp = nil
	case BudgetInvoiced:
		b.Status = BudgetInvoiced
		b.NextFollowUp = nil
	default:
		return fmt.Errorf("unknown budget status %q: %w", status, ErrValidation)
	}
	b.UpdatedAt = now
	return nil
}

// MarkLost transitions the budget to lost and records why.
func (b *Budget) MarkLost(reason LostReason, notes string, now time.Time) error {
	if err := b.TransitionTo(BudgetLost, now); err != nil {
		return err
	}
	b.LostReason = reason
	b.LostNotes = notes
	return nil
}

// ConfirmWin closes the budget for closing. When closing covers the full
// proposed value the budget simply becomes invoiced at the closing value and
// no sibling is returned. When closing is lower (a partial win), the
// remainder is returned as a new Lost sibling budget so realized revenue and
// the abandoned remainder stay independently reportable; the sibling carries
// no identity yet (the caller assigns it and persists both records as a
// unit). Either way the receiver ends up invoiced at the closing value with
// its schedule cleared.
func (b *Budget) ConfirmWin(closing decimal.Decimal, now time.Time) (*Budget, error) {
	if !closing.IsPositive() {
		return nil, fmt.Errorf("closing value must be positive, got %s: %w", closing, ErrValidation)
	}
	if b.Status.IsTerminal() {
		return nil, fmt.Errorf("budget is already %s: %w", b.Status, ErrValidation)
	}

	var sibling *Budget
	if closing.LessThan(b.Value) {
		sibling = &Budget{
			TenantID:     b.TenantID,
			OwnerID:      b.OwnerID,
			ClientID:     b.ClientID,
			ContactID:    b.ContactID,
			Title:        PartialLossTitlePrefix + b.Title,
			Value:        b.Value.Sub(closing),
			Status:       BudgetLost,
			DateSent:     b.DateSent,
			Observations: b.Observations,
			LostReason:   LostReasonSplit,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	b.Value = closing
	b.Status = BudgetInvoiced
	b.NextFollowUp = nil
	b.UpdatedAt = now
	return sibling, nil
}
