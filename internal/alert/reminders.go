package alert

import (
	"sort"
	"time"

	"github.com/brunovidal/funnel/internal/domain"
)

// ReminderEvaluation is the outcome of one evaluation pass: the single
// surfaced reminder (nil when nothing is due) and the full listing order.
type ReminderEvaluation struct {
	Triggering *domain.Reminder
	Sorted     []*domain.Reminder
}

// ReminderSlot holds the one surfaced reminder between evaluation passes.
// Newly-due reminders do not interrupt an already-surfaced one; the slot is
// released when its reminder is dismissed or completed.
type ReminderSlot struct {
	heldID string
}

// Evaluate selects the reminder to surface and computes the listing order.
// Selection is deterministic: the held reminder wins while it is still due;
// otherwise the due reminder with the earliest RemindAt wins, ties broken by
// lexical id.
func (s *ReminderSlot) Evaluate(reminders []*domain.Reminder, now time.Time) ReminderEvaluation {
	eval := ReminderEvaluation{Sorted: SortReminders(reminders)}

	if s.heldID != "" {
		if held := findReminder(reminders, s.heldID); held != nil && held.IsDue(now) {
			eval.Triggering = held
			return eval
		}
		s.heldID = ""
	}

	var next *domain.Reminder
	for _, r := range reminders {
		if !r.IsDue(now) {
			continue
		}
		if next == nil || earlierReminder(r, next) {
			next = r
		}
	}
	if next != nil {
		s.heldID = next.ID
		eval.Triggering = next
	}
	return eval
}

// Held returns the id of the currently surfaced reminder, or "" when the
// slot is empty.
func (s *ReminderSlot) Held() string {
	return s.heldID
}

// Release empties the slot so the next evaluation may surface another
// reminder.
func (s *ReminderSlot) Release() {
	s.heldID = ""
}

// SortReminders returns the listing order: incomplete reminders before
// completed ones, each group ascending by RemindAt, ties broken by lexical
// id. The input slice is not modified.
func SortReminders(reminders []*domain.Reminder) []*domain.Reminder {
	sorted := make([]*domain.Reminder, len(reminders))
	copy(sorted, reminders)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		return earlierReminder(a, b)
	})
	return sorted
}

func earlierReminder(a, b *domain.Reminder) bool {
	if !a.RemindAt.Equal(b.RemindAt) {
		return a.RemindAt.Before(b.RemindAt)
	}
	return a.ID < b.ID
}

func findReminder(reminders []*domain.Reminder, id string) *domain.Reminder {
	for _, r := range reminders {
		if r.ID == id {
			return r
		}
	}
	return nil
}
