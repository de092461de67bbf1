// Package alert holds the pure computation over budgets and reminders: the
// follow-up date classifier, the notification deriver and the reminder
// evaluator. Nothing in this package touches storage or the wall clock;
// callers pass the record set and now explicitly, so every function is
// deterministic and trivially re-runnable.
package alert

import (
	"time"

	"github.com/brunovidal/funnel/internal/domain"
)

// FollowUpState classifies a budget's scheduled follow-up relative to now.
type FollowUpState string

const (
	StateNone     FollowUpState = "none"
	StateFuture   FollowUpState = "future"
	StateDueToday FollowUpState = "due_today"
	StateOverdue  FollowUpState = "overdue"
)

// ClassifyFollowUp classifies the budget's next follow-up date at
// calendar-day granularity. Only budgets in sent or following_up
// participate; other statuses classify as none even if a stale date remains
// on the record (the lifecycle clears dates on terminal transitions, but the
// classifier does not trust that).
func ClassifyFollowUp(b *domain.Budget, now time.Time) FollowUpState {
	if b.NextFollowUp == nil {
		return StateNone
	}
	switch b.Status {
	case domain.BudgetSent, domain.BudgetFollowingUp:
	default:
		return StateNone
	}

	day := midnightUTC(*b.NextFollowUp)
	today := midnightUTC(now)
	switch {
	case day.After(today):
		return StateFuture
	case day.Equal(today):
		return StateDueToday
	default:
		return StateOverdue
	}
}

// midnightUTC strips the time-of-day component. Dates that carry a time are
// still compared at day granularity.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
