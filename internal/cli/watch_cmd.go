package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brunovidal/funnel/internal/cli/formatter"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the alert engine and print alerts as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Engine.Start(ctx, app.CronSpec); err != nil {
				return err
			}
			defer app.Engine.Stop()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			var lastShown time.Time
			printSnapshot(app)
			lastShown = app.Engine.Snapshot().GeneratedAt

			for {
				select {
				case <-quit:
					fmt.Println()
					return nil
				case <-ticker.C:
					snap := app.Engine.Snapshot()
					if snap.GeneratedAt.After(lastShown) {
						printSnapshot(app)
						lastShown = snap.GeneratedAt
					}
				}
			}
		},
	}
}

func printSnapshot(app *App) {
	snap := app.Engine.Snapshot()

	fmt.Println(formatter.Header(fmt.Sprintf("alerts at %s", snap.GeneratedAt.Local().Format("15:04:05"))))
	if len(snap.Notifications) == 0 {
		fmt.Println(formatter.Dim("No follow-ups need attention."))
	}
	for _, n := range snap.Notifications {
		fmt.Println(formatter.NotificationLine(n))
	}
	if snap.Reminders.Triggering != nil {
		r := snap.Reminders.Triggering
		fmt.Printf("%s%s %s\n",
			formatter.StyleRed.Render("⏰ "),
			formatter.Bold(r.Title),
			formatter.Dim(fmt.Sprintf("(due %s)", r.RemindAt.Local().Format(reminderTimeLayout))))
	}
	fmt.Println()
}
