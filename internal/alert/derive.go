package alert

import (
	"sort"
	"time"

	"github.com/brunovidal/funnel/internal/domain"
)

type NotificationType string

const (
	NotificationOverdue NotificationType = "overdue"
	NotificationToday   NotificationType = "today"
)

// UnknownClientName is used when a budget references a client id that is not
// in the supplied name set.
const UnknownClientName = "unknown"

// Notification is an ephemeral alert about a budget's follow-up timing. It is
// derived on every evaluation and never persisted; consumers replace their
// notification set wholesale.
type Notification struct {
	ID         string
	Type       NotificationType
	BudgetID   string
	ClientName string
	Message    string
}

// Derive produces the current notification set for the given budgets. Each
// budget contributes at most one notification: overdue and due-today are
// mutually exclusive by construction of ClassifyFollowUp. The result is
// sorted overdue-first, then by budget id, so repeated derivations over the
// same records are byte-for-byte identical.
func Derive(budgets []*domain.Budget, clientNames map[string]string, now time.Time) []Notification {
	var out []Notification
	for _, b := range budgets {
		var typ NotificationType
		var msg string
		switch ClassifyFollowUp(b, now) {
		case StateOverdue:
			typ, msg = NotificationOverdue, "follow-up overdue"
		case StateDueToday:
			typ, msg = NotificationToday, "follow-up due today"
		default:
			continue
		}

		name, ok := clientNames[b.ClientID]
		if !ok || name == "" {
			name = UnknownClientName
		}
		out = append(out, Notification{
			ID:         string(typ) + ":" + b.ID,
			Type:       typ,
			BudgetID:   b.ID,
			ClientName: name,
			Message:    msg,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == NotificationOverdue
		}
		return out[i].BudgetID < out[j].BudgetID
	})
	return out
}
