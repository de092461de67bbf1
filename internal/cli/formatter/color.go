package formatter

import (
	"fmt"
	"strings"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator for a budget status.
func StatusPill(status domain.BudgetStatus) string {
	switch status {
	case domain.BudgetSent:
		return StyleBlue.Render("○ Sent")
	case domain.BudgetFollowingUp:
		return StyleYellow.Render("● Following up")
	case domain.BudgetOrderPlaced:
		return StyleGreen.Render("● Order placed")
	case domain.BudgetOnHold:
		return StyleDim.Render("◌ On hold")
	case domain.BudgetInvoiced:
		return StyleGreen.Render("✔ Invoiced")
	case domain.BudgetLost:
		return StyleRed.Render("✖ Lost")
	default:
		return StyleDim.Render(string(status))
	}
}

// TagBadge returns a purple badge for a follow-up tag, or a dim placeholder.
func TagBadge(tag domain.FollowUpTag) string {
	if tag == domain.TagNone {
		return StyleDim.Render("--")
	}
	label := strings.ReplaceAll(string(tag), "_", " ")
	return StylePurple.Render(label)
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
