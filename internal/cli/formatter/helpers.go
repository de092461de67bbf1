package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brunovidal/funnel/internal/alert"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0:
		return fmt.Sprintf("In %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}

// FollowUpDate renders a budget's next follow-up date with urgency coloring:
// red when due or overdue, yellow within a week, dim when unscheduled.
func FollowUpDate(t *time.Time, now time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	text := RelativeDate(*t, now)
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days <= 0:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// NotificationLine renders one derived notification.
func NotificationLine(n alert.Notification) string {
	icon := StyleYellow.Render("●")
	if n.Type == alert.NotificationOverdue {
		icon = StyleRed.Render("●")
	}
	return fmt.Sprintf("%s %s %s %s", icon, Bold(n.ClientName), n.Message, Dim(n.BudgetID[:shortIDLen(n.BudgetID)]))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(id[:shortIDLen(id)])
}

func shortIDLen(id string) int {
	if len(id) > 8 {
		return 8
	}
	return len(id)
}

// HumanDate returns an absolute date, collapsing today and yesterday.
func HumanDate(t time.Time, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}
