package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/brunovidal/funnel/internal/cli/formatter"
	"github.com/brunovidal/funnel/internal/domain"
)

func newProspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prospect",
		Short: "Manage prospects waiting to become budgets",
	}

	cmd.AddCommand(
		newProspectListCmd(app),
		newProspectAddCmd(app),
		newProspectConvertCmd(app),
	)

	return cmd
}

func newProspectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prospects",
		RunE: func(cmd *cobra.Command, args []string) error {
			prospects, err := app.Prospects.ListByTenant(context.Background(), app.TenantID)
			if err != nil {
				return err
			}
			if len(prospects) == 0 {
				fmt.Println("No prospects found.")
				return nil
			}

			headers := []string{"ID", "NAME", "CLIENT", "NOTES"}
			rows := make([][]string, 0, len(prospects))
			for _, p := range prospects {
				client := formatter.Dim("--")
				if p.ClientID != nil {
					client = formatter.TruncID(*p.ClientID)
				}
				notes := p.Notes
				if len(notes) > 40 {
					notes = notes[:37] + "..."
				}
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					p.Name,
					client,
					formatter.Dim(notes),
				})
			}
			fmt.Print(formatter.RenderBox("Prospects", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newProspectAddCmd(app *App) *cobra.Command {
	var clientID, notes string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a prospect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Prospect{
				TenantID: app.TenantID,
				OwnerID:  app.OwnerID,
				Name:     args[0],
				Notes:    notes,
			}
			if clientID != "" {
				p.ClientID = &clientID
			}
			if err := app.Prospects.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Added prospect %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client ID to link")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newProspectConvertCmd(app *App) *cobra.Command {
	var title, value string

	cmd := &cobra.Command{
		Use:   "convert ID",
		Short: "Convert a prospect into a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prospectID, err := resolveProspectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			v, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid --value %q: %w", value, err)
			}

			b, err := app.Prospects.Convert(ctx, prospectID, title, v)
			if err != nil {
				return err
			}
			fmt.Printf("Converted to budget %s at %s (%s)\n", b.Title, app.Amounts.Format(b.Value), b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Budget title (defaults to the prospect name)")
	cmd.Flags().StringVar(&value, "value", "", "Budget value, e.g. 1500.00")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
