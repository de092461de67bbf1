package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brunovidal/funnel/internal/cli/formatter"
	"github.com/brunovidal/funnel/internal/domain"
)

const reminderTimeLayout = "2006-01-02 15:04"

func newReminderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Manage standalone reminders",
	}

	cmd.AddCommand(
		newReminderListCmd(app),
		newReminderAddCmd(app),
		newReminderToggleCmd(app),
		newReminderDismissCmd(app),
	)

	return cmd
}

func newReminderListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now().UTC()

			eval, err := app.Alerts.EvaluateReminders(ctx, app.TenantID, now)
			if err != nil {
				return err
			}
			if len(eval.Sorted) == 0 {
				fmt.Println("No reminders found.")
				return nil
			}

			headers := []string{"ID", "TITLE", "WHEN", "STATE"}
			rows := make([][]string, 0, len(eval.Sorted))
			for _, r := range eval.Sorted {
				state := formatter.Dim("open")
				switch {
				case r.Dismissed:
					state = formatter.Dim("dismissed")
				case r.Completed:
					state = formatter.StyleGreen.Render("done")
				case eval.Triggering != nil && r.ID == eval.Triggering.ID:
					state = formatter.StyleRed.Render("due now")
				case r.IsDue(now):
					state = formatter.StyleYellow.Render("due")
				}
				rows = append(rows, []string{
					formatter.TruncID(r.ID),
					r.Title,
					r.RemindAt.Local().Format(reminderTimeLayout),
					state,
				})
			}

			fmt.Print(formatter.RenderBox("Reminders", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newReminderAddCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remindAt, err := time.ParseInLocation(reminderTimeLayout, at, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --at %q (want \"YYYY-MM-DD HH:MM\"): %w", at, err)
			}

			r := &domain.Reminder{
				TenantID: app.TenantID,
				OwnerID:  app.OwnerID,
				Title:    args[0],
				RemindAt: remindAt.UTC(),
			}
			if err := app.Reminders.Create(context.Background(), r); err != nil {
				return err
			}

			fmt.Printf("Added reminder %q for %s (%s)\n", r.Title, remindAt.Format(reminderTimeLayout), r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When to remind (\"YYYY-MM-DD HH:MM\", local time)")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newReminderToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Toggle a reminder's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveReminderID(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Reminders.Toggle(ctx, id)
			if err != nil {
				return err
			}
			state := "open"
			if r.Completed {
				state = "done"
			}
			fmt.Printf("%s is now %s\n", r.Title, state)
			return nil
		},
	}
}

func newReminderDismissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss ID",
		Short: "Dismiss a reminder permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveReminderID(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Reminders.Dismiss(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Dismissed %s\n", r.Title)
			return nil
		},
	}
}
