package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brunovidal/funnel/internal/cli/formatter"
)

func newNotificationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show current follow-up alerts and the due reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now().UTC()

			notifications, err := app.Alerts.Notifications(ctx, app.TenantID, now)
			if err != nil {
				return err
			}
			eval, err := app.Alerts.EvaluateReminders(ctx, app.TenantID, now)
			if err != nil {
				return err
			}

			var b strings.Builder
			if len(notifications) == 0 {
				b.WriteString(formatter.Dim("No follow-ups need attention.") + "\n")
			}
			for _, n := range notifications {
				b.WriteString(formatter.NotificationLine(n) + "\n")
			}

			if eval.Triggering != nil {
				b.WriteString("\n")
				b.WriteString(formatter.StyleRed.Render("⏰ ") + formatter.Bold(eval.Triggering.Title))
				b.WriteString(formatter.Dim(fmt.Sprintf("  (due %s)", eval.Triggering.RemindAt.Local().Format(reminderTimeLayout))))
				b.WriteString("\n")
			}

			fmt.Print(formatter.RenderBox("Notifications", strings.TrimRight(b.String(), "\n")))
			fmt.Println()
			return nil
		},
	}
}
