package domain

import (
	"strings"
	"time"
)

// FollowUp is a single contact-log entry on a budget. Entries are immutable
// once appended; insertion order is chronological order of creation.
type FollowUp struct {
	ID       string
	BudgetID string
	Note     string
	MediaRef *string
	Tag      FollowUpTag

	CreatedAt time.Time
}

// HasContent reports whether the entry carries a note or an attachment.
// An entry with neither is rejected by AppendFollowUp.
func (f *FollowUp) HasContent() bool {
	if strings.TrimSpace(f.Note) != "" {
		return true
	}
	return f.MediaRef != nil && strings.TrimSpace(*f.MediaRef) != ""
}
