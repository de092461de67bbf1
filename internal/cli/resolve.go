package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveBudgetID resolves a budget identifier which can be a full ID or a
// unique ID prefix (at least 4 characters).
func resolveBudgetID(ctx context.Context, app *App, input string) (string, error) {
	if len(input) < 4 {
		return "", fmt.Errorf("budget ID prefix %q is too short (need at least 4 characters)", input)
	}
	budgets, err := app.Budgets.ListByTenant(ctx, app.TenantID)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, b := range budgets {
		if b.ID == input {
			return b.ID, nil
		}
		if strings.HasPrefix(b.ID, input) {
			matches = append(matches, b.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no budget matches %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("budget ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveReminderID works like resolveBudgetID for reminders.
func resolveReminderID(ctx context.Context, app *App, input string) (string, error) {
	if len(input) < 4 {
		return "", fmt.Errorf("reminder ID prefix %q is too short (need at least 4 characters)", input)
	}
	reminders, err := app.Reminders.ListByTenant(ctx, app.TenantID)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, r := range reminders {
		if r.ID == input {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no reminder matches %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("reminder ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveProspectID works like resolveBudgetID for prospects.
func resolveProspectID(ctx context.Context, app *App, input string) (string, error) {
	if len(input) < 4 {
		return "", fmt.Errorf("prospect ID prefix %q is too short (need at least 4 characters)", input)
	}
	prospects, err := app.Prospects.ListByTenant(ctx, app.TenantID)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, p := range prospects {
		if p.ID == input {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no prospect matches %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("prospect ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
