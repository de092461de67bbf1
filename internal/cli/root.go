package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/engine"
	"github.com/brunovidal/funnel/internal/service"
)

// App holds references to the services and engine used by CLI commands.
type App struct {
	Budgets   service.BudgetService
	Reminders service.ReminderService
	Clients   service.ClientService
	Prospects service.ProspectService
	Alerts    service.AlertService
	Engine    *engine.Engine

	Amounts *domain.AmountFormatter
	Log     *logrus.Logger

	// Every command operates within one tenant/owner pair.
	TenantID string
	OwnerID  string

	// CronSpec drives the watch command's periodic re-evaluation.
	CronSpec string

	IsInteractive func() bool
}

// NewRootCmd creates the top-level "funnel" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "funnel",
		Short: "Sales pipeline follow-up tracker",
	}

	root.AddCommand(
		newBudgetCmd(app),
		newReminderCmd(app),
		newClientCmd(app),
		newProspectCmd(app),
		newNotificationsCmd(app),
		newWatchCmd(app),
	)

	return root
}
