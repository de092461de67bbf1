package domain

import (
	"fmt"
	"time"
)

// Reminder is a standalone time-triggered to-do, independent of any budget.
type Reminder struct {
	ID       string
	TenantID string
	OwnerID  string

	Title     string
	RemindAt  time.Time
	Completed bool
	Dismissed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Reminder) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("reminder title is required: %w", ErrValidation)
	}
	if r.RemindAt.IsZero() {
		return fmt.Errorf("reminder time is required: %w", ErrValidation)
	}
	return nil
}

// IsDue reports whether the reminder is currently triggering. The comparison
// is at full instant precision, unlike budget follow-ups which compare at
// calendar-day granularity.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Dismissed && !r.Completed && !r.RemindAt.After(now)
}

// ToggleCompleted flips the completed flag. Completion and dismissal are
// independent; completing never dismisses.
func (r *Reminder) ToggleCompleted(now time.Time) {
	r.Completed = !r.Completed
	r.UpdatedAt = now
}

// Dismiss permanently excludes the reminder from active consideration. There
// is no undismiss.
func (r *Reminder) Dismiss(now time.Time) {
	r.Dismissed = true
	r.UpdatedAt = now
}
