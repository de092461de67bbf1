package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/brunovidal/funnel/internal/cli/formatter"
	"github.com/brunovidal/funnel/internal/domain"
)

const dateFlagLayout = "2006-01-02"

func newBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budgets in the pipeline",
	}

	cmd.AddCommand(
		newBudgetListCmd(app),
		newBudgetAddCmd(app),
		newBudgetFollowUpCmd(app),
		newBudgetStatusCmd(app),
		newBudgetWinCmd(app),
		newBudgetLoseCmd(app),
	)

	return cmd
}

func newBudgetListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			budgets, err := app.Budgets.ListByTenant(ctx, app.TenantID)
			if err != nil {
				return err
			}

			names := map[string]string{}
			clients, err := app.Clients.ListByTenant(ctx, app.TenantID)
			if err != nil {
				return err
			}
			for _, c := range clients {
				names[c.ID] = c.Name
			}

			now := time.Now()
			headers := []string{"ID", "TITLE", "CLIENT", "VALUE", "STATUS", "NEXT FOLLOW-UP"}
			rows := make([][]string, 0, len(budgets))
			for _, b := range budgets {
				if !all && b.Status.IsTerminal() {
					continue
				}
				client := names[b.ClientID]
				if client == "" {
					client = formatter.Dim("unknown")
				}
				rows = append(rows, []string{
					formatter.TruncID(b.ID),
					b.Title,
					client,
					app.Amounts.Format(b.Value),
					formatter.StatusPill(b.Status),
					formatter.FollowUpDate(b.NextFollowUp, now),
				})
			}

			if len(rows) == 0 {
				fmt.Println("No budgets found.")
				return nil
			}
			fmt.Print(formatter.RenderBox("Budgets", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include invoiced and lost budgets")
	return cmd
}

func newBudgetAddCmd(app *App) *cobra.Command {
	var clientID, title, value, observations, dateSent string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid --value %q: %w", value, err)
			}

			sent := time.Now().UTC()
			if dateSent != "" {
				sent, err = time.Parse(dateFlagLayout, dateSent)
				if err != nil {
					return fmt.Errorf("invalid --date-sent %q (want YYYY-MM-DD): %w", dateSent, err)
				}
			}

			b := &domain.Budget{
				TenantID:     app.TenantID,
				OwnerID:      app.OwnerID,
				ClientID:     clientID,
				Title:        title,
				Value:        v,
				DateSent:     sent,
				Observations: observations,
			}
			if err := app.Budgets.Create(context.Background(), b); err != nil {
				return err
			}

			fmt.Printf("Added budget %s (%s)\n", title, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client ID")
	cmd.Flags().StringVar(&title, "title", "", "Budget title")
	cmd.Flags().StringVar(&value, "value", "", "Budget value, e.g. 1500.00")
	cmd.Flags().StringVar(&observations, "observations", "", "Free-form notes")
	cmd.Flags().StringVar(&dateSent, "date-sent", "", "Date the budget was sent (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newBudgetFollowUpCmd(app *App) *cobra.Command {
	var note, media, tag, next string

	cmd := &cobra.Command{
		Use:   "followup ID",
		Short: "Record a follow-up interaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			budgetID, err := resolveBudgetID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var mediaRef *string
			if media != "" {
				mediaRef = &media
			}
			var nextAt *time.Time
			if next != "" {
				parsed, err := time.Parse(dateFlagLayout, next)
				if err != nil {
					return fmt.Errorf("invalid --next %q (want YYYY-MM-DD): %w", next, err)
				}
				nextAt = &parsed
			}

			b, err := app.Budgets.RecordFollowUp(ctx, budgetID, note, mediaRef, domain.FollowUpTag(tag), nextAt)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded follow-up on %s (%d total)\n", b.Title, len(b.FollowUps))
			if b.NextFollowUp != nil {
				fmt.Printf("Next follow-up: %s\n", b.NextFollowUp.Format(dateFlagLayout))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "What happened in this interaction")
	cmd.Flags().StringVar(&media, "media", "", "Reference to an attached file or message")
	cmd.Flags().StringVar(&tag, "tag", "", "Outcome tag: waiting_response, meeting_scheduled, proposal_revised")
	cmd.Flags().StringVar(&next, "next", "", "Next follow-up date (YYYY-MM-DD); omit to clear the schedule")

	return cmd
}

func newBudgetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Change a budget's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			budgetID, err := resolveBudgetID(ctx, app, args[0])
			if err != nil {
				return err
			}

			b, err := app.Budgets.ChangeStatus(ctx, budgetID, domain.BudgetStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", b.Title, formatter.StatusPill(b.Status))
			return nil
		},
	}
}

func newBudgetWinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "win ID AMOUNT",
		Short: "Confirm a win, splitting off the unsold remainder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			budgetID, err := resolveBudgetID(ctx, app, args[0])
			if err != nil {
				return err
			}
			closing, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			result, err := app.Budgets.ConfirmWin(ctx, budgetID, closing)
			if err != nil {
				return err
			}

			fmt.Printf("Invoiced %s at %s\n", result.Budget.Title, app.Amounts.Format(result.Budget.Value))
			if result.LostSibling != nil {
				fmt.Printf("Remainder %s recorded as lost (%s)\n",
					app.Amounts.Format(result.LostSibling.Value), result.LostSibling.ID)
			}
			return nil
		},
	}
}

func newBudgetLoseCmd(app *App) *cobra.Command {
	var reason, notes string

	cmd := &cobra.Command{
		Use:   "lose ID",
		Short: "Mark a budget as lost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			budgetID, err := resolveBudgetID(ctx, app, args[0])
			if err != nil {
				return err
			}

			b, err := app.Budgets.MarkLost(ctx, budgetID, domain.LostReason(reason), notes)
			if err != nil {
				return err
			}
			fmt.Printf("%s marked as lost\n", b.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Loss reason: price, competitor, no_response, other")
	cmd.Flags().StringVar(&notes, "notes", "", "Additional context for the loss")

	return cmd
}
